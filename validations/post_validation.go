package validations

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainPost "github.com/postpilothq/postpilot/domains/post"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	pkgError "github.com/postpilothq/postpilot/pkg/error"
)

func ValidateCreatePost(ctx context.Context, request domainPost.CreatePostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Content,
			validation.Required,
			validation.RuneLength(1, pilotDomain.MaxPostLength),
		),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}

func ValidateSchedulePost(ctx context.Context, request domainPost.SchedulePostRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Content,
			validation.Required,
			validation.RuneLength(1, pilotDomain.MaxPostLength),
		),
		validation.Field(&request.ScheduledAt,
			validation.Required,
			validation.By(func(value interface{}) error {
				at, _ := value.(time.Time)
				if at.Before(time.Now()) {
					return validation.NewError("validation_past", "must be in the future")
				}
				return nil
			}),
		),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}
	return nil
}
