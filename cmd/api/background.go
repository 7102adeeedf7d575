package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tastemap/internal/domain/reviews"
	"tastemap/internal/notifications"
)

// background runs fn outside the request, recovering panics. run waits for
// these before the process exits.
func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "error", fmt.Sprint(err))
			}
		}()
		fn()
	}()
}

// sendMail delivers in the background; failures are logged only.
func (app *application) sendMail(template, username, email string, data any) {
	app.background(func() {
		if err := app.mailer.Send(template, username, email, data); err != nil {
			app.logger.Errorw("error sending email", "template", template, "email", email, "error", err)
		}
	})
}

// notifyReview mails the party interested in a review event. The review is
// copied so the handler may keep using its value.
func (app *application) notifyReview(event notifications.ReviewEvent, review *reviews.Review) {
	if app.notifier == nil {
		return
	}
	r := *review
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := app.notifier.SendReviewNotification(ctx, event, &r)
		if err != nil && !errors.Is(err, notifications.ErrNoRecipient) {
			app.logger.Errorw("error sending review notification", "review_id", r.ID, "event", event, "error", err)
		}
	})
}

func (app *application) liftSuspensionsEvery(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run once immediately
		app.liftExpiredSuspensions()

		for {
			select {
			case <-ticker.C:
				app.liftExpiredSuspensions()
			case <-stop:
				return
			}
		}
	}()
}

func (app *application) liftExpiredSuspensions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := app.store.Users.LiftExpiredSuspensions(ctx)
	if err != nil {
		app.logger.Errorf("Error lifting expired suspensions: %v", err)
		return
	}
	if n > 0 {
		app.logger.Infof("Lifted %d expired suspensions at %s", n, time.Now().Format(time.RFC1123))
	}
}
