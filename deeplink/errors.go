package deeplink

import "errors"

// ErrEmptyPattern is returned when a pattern or template source is empty.
var ErrEmptyPattern = errors.New("deeplink: empty pattern")

// ErrInvalidMatcher is returned when an unset Matcher is given to a rule.
var ErrInvalidMatcher = errors.New("deeplink: matcher is not set")

// ErrBlankValue is returned when an exact scheme or path value is blank.
var ErrBlankValue = errors.New("deeplink: target value must be set")

// ErrNilFunc is returned when a nil builder, serializer or handler is registered.
var ErrNilFunc = errors.New("deeplink: function must be set")

// ErrAbstractVariant is returned when a serializer or handler is registered
// for an interface type. Deep link variants must be concrete types.
var ErrAbstractVariant = errors.New("deeplink: deep link type must be concrete")

// ErrIncompleteRule is reported when a rule is matched without being fully
// configured.
var ErrIncompleteRule = errors.New("deeplink: rule is not completely configured")

// ErrNotAbsolute is returned when a raw deep link does not carry a scheme.
var ErrNotAbsolute = errors.New("deeplink: uri is not absolute")
