package courseservice

import "errors"

var (
	// ErrCourseNotFound is returned for unknown course ids.
	ErrCourseNotFound = errors.New("course not found")
	// ErrCourseReadOnly is returned when editing or deleting a built-in course.
	ErrCourseReadOnly = errors.New("built-in courses cannot be modified")
	// ErrInvalidCourseRequest is returned for malformed create requests.
	ErrInvalidCourseRequest = errors.New("invalid course request")
)
