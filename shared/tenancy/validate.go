package tenancy

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs struct validation and folds failures into one InvalidInput.
func check(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidInput(entity, "%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of ["+fe.Param()+"]")
		case "gte":
			msgs = append(msgs, fe.Field()+" must be >= "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
		}
	}
	return invalidInput(entity, "%s", strings.Join(msgs, "; "))
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
