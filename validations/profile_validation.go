package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainProfile "github.com/postpilothq/postpilot/domains/profile"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
)

func ValidateAddTopic(ctx context.Context, request domainProfile.AddTopicRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Topic, validation.Required),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
