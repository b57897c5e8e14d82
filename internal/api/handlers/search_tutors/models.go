package search_tutors

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/TutorBookingService/internal/service/tutors/models"
)

// ToServiceRequest разбирает query параметры subject, maxRate, minRating, search
func ToServiceRequest(query url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{}

	if v := query.Get("subject"); v != "" {
		req.Subject = &v
	}
	if v := query.Get("search"); v != "" {
		req.Search = &v
	}

	if v := query.Get("maxRate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("maxRate: %q is not a non-negative number", v)
		}
		req.MaxRate = &rate
	}

	if v := query.Get("minRating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 5 {
			return nil, fmt.Errorf("minRating: %q must be between 0 and 5", v)
		}
		req.MinRating = &rating
	}

	return req, nil
}
