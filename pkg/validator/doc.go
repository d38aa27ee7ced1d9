// Package validator provides small, composable validation rules.
//
// A Rule pairs a Check function with the ValidationError reported when the
// check fails. Apply evaluates rules in order and aggregates failures into a
// ValidationErrors slice that satisfies the error interface, so callers can
// report every bad field in one return value.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Positive("module_scale", scale),
//	    validator.MinNum("margin", margin, 0),
//	    validator.InListCaseInsensitive("level", level, []string{"L", "M", "Q", "H"}),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, f := range verrs.Fields() {
//	        // ...
//	    }
//	}
//
// Rules hold no state and the package is safe for concurrent use.
package validator
