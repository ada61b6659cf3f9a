// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/taibuivan/nevisa/internal/follow"
	"github.com/taibuivan/nevisa/pkg/pointer"
	"github.com/taibuivan/nevisa/pkg/uuid"
)

// Composer renders in-app release notifications in Persian.
type Composer struct {
	printer *message.Printer
	newID   func() string
}

// NewComposer constructs a [Composer] with Persian digit shaping.
func NewComposer() *Composer {
	return &Composer{
		printer: message.NewPrinter(language.Persian),
		newID:   uuid.New,
	}
}

// Message returns the notification text for an episode release.
//
// The episode's display order is rendered in Persian digits without grouping.
func (composer *Composer) Message(event Event) string {
	return composer.printer.Sprintf("قسمت %v از مجموعهٔ «%s» منتشر شد: %s",
		number.Decimal(event.Episode.Order, number.NoSeparator()), event.Series.Title, event.Episode.Article.Title)
}

// For returns a [ComposeFunc] bound to one release event.
//
// The author of the episode's article is the actor; all rows share createdAt.
func (composer *Composer) For(event Event) ComposeFunc {
	text := composer.Message(event)
	createdAt := event.ReleasedAt.UTC().Truncate(time.Microsecond)

	var actorID *string
	if event.Episode.Article.AuthorID != "" {
		actorID = pointer.To(event.Episode.Article.AuthorID)
	}
	articleID := pointer.To(event.Episode.Article.ID)

	return func(follower follow.Follower) Notification {
		return Notification{
			ID:        composer.newID(),
			Type:      NotificationTypeSeriesRelease,
			Message:   text,
			UserID:    follower.UserID,
			ActorID:   actorID,
			ArticleID: articleID,
			CreatedAt: createdAt,
		}
	}
}
