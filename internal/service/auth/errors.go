package auth

import "errors"

var (
	// ErrEmailTaken возвращается при регистрации с занятым email
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
