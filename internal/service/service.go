// Package service holds the request-scoped business rules: friend edges,
// the caller's own profile, tours and the programme listing.  Every
// operation takes the acting identity explicitly; none of them read
// request state.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/queue"
)

// publishTimeout bounds the hand-off to the publisher after a committed
// mutation.  The AMQP publisher only enqueues, so it returns well inside it.
const publishTimeout = 2 * time.Second

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into a BadRequest.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.BadRequest("Invalid request body")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.BadRequest(fmt.Sprintf("%s is required", fe.Field()))
	case "max":
		return apperr.BadRequest(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	case "email":
		return apperr.BadRequest(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	default:
		return apperr.BadRequest(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// notifier publishes activity events on behalf of a service.  A failed
// publish is logged and otherwise ignored: the mutation has already been
// committed.
type notifier struct {
	pub    queue.Publisher
	logger *slog.Logger
}

func newNotifier(pub queue.Publisher, logger *slog.Logger) notifier {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return notifier{pub: pub, logger: logger}
}

func (n notifier) notify(ctx context.Context, typ string, actorID, targetID uint64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := n.pub.Publish(ctx, queue.NewEvent(typ, actorID, targetID)); err != nil {
		n.logger.Warn("publish activity event failed", "type", typ, "actor_id", actorID, "error", err)
	}
}
