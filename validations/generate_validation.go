package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainGenerate "github.com/postpilothq/postpilot/domains/generate"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
)

func ValidateGenerate(ctx context.Context, request domainGenerate.GenerateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Count,
			validation.Required,
			validation.Min(1),
			validation.Max(10),
		),
		validation.Field(&request.Topics,
			validation.Each(validation.Required),
		),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
