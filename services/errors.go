package services

import "errors"

var (
	// ErrEmailTaken is returned when a signup email already has an account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers both unknown emails and bad passwords.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUserNotFound is returned when a referenced user no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound is returned when no quiz matches the given ID.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound is returned when a question does not exist or does
	// not belong to the given quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionCountMismatch is returned when an update payload does not
	// carry one entry per stored question.
	ErrQuestionCountMismatch = errors.New("mismatch between quiz questions and incoming questions count")
	// ErrQuestionLocked is returned when an update tries to change a
	// question's type or its number of options.
	ErrQuestionLocked = errors.New("cannot update the type of the question or change the number of options")
	// ErrOptionOutOfRange is returned when a submitted option index is
	// outside the question's options list.
	ErrOptionOutOfRange = errors.New("selected option is out of range")
	// ErrInvalidCreatedAt is returned when the caller-supplied creation
	// timestamp cannot be parsed.
	ErrInvalidCreatedAt = errors.New("createdAt must be an RFC3339 timestamp or a YYYY-MM-DD date")
)
