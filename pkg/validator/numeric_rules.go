package validator

import "fmt"

// MinNum validates that a numeric value is greater than or equal to the minimum.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
			Value:   value,
		},
	}
}

// MaxNum validates that a numeric value is less than or equal to the maximum.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
			Value:   value,
		},
	}
}

// GreaterThan validates that a numeric value is strictly greater than the bound.
func GreaterThan[T Numeric](field string, value T, bound T) Rule {
	return Rule{
		Check: func() bool {
			return value > bound
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be greater than %v", bound),
			Value:   value,
		},
	}
}

// LessThan validates that a numeric value is strictly less than the bound.
func LessThan[T Numeric](field string, value T, bound T) Rule {
	return Rule{
		Check: func() bool {
			return value < bound
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be less than %v", bound),
			Value:   value,
		},
	}
}

// Positive validates that a numeric value is greater than zero.
func Positive[T Numeric](field string, value T) Rule {
	var zero T
	return GreaterThan(field, value, zero)
}

// Min is an alias for MinNum.
func Min[T Numeric](field string, value T, min T) Rule {
	return MinNum(field, value, min)
}

// Max is an alias for MaxNum.
func Max[T Numeric](field string, value T, max T) Rule {
	return MaxNum(field, value, max)
}
