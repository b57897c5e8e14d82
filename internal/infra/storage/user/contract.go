package user

import "github.com/m04kA/TutorBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
