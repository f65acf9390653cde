package registration

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/i18n"
	"github.com/dmitrijs2005/cargobot/internal/menu"
	"github.com/dmitrijs2005/cargobot/internal/models"
	"github.com/dmitrijs2005/cargobot/internal/notify"
	"golang.org/x/sync/errgroup"
)

// staffLang is the language of everything posted to staff channels.
const staffLang = models.LanguageUz

const timeLayout = "02.01.2006 15:04"

// ApplicantSummary is the staff-channel description of an application.
func ApplicantSummary(c *models.Customer) string {
	return i18n.T(staffLang, i18n.MsgStaffNewApplicant,
		c.FullName, c.Phone, c.DocumentNumber, c.BirthDate, c.Pinfl, c.Address,
		c.ClientCode, c.RegisteredAt.Format(timeLayout))
}

// verificationJob posts the document images and the summary with the
// decision buttons to the verification channel, then records which message
// carries the buttons. Images are sent at most once across retries and
// their failure does not hold back the summary.
func (f *Flow) verificationJob(c models.Customer) notify.Job {
	channel := f.channels.Verification
	photosSent := false

	return notify.Job{
		Name: fmt.Sprintf("verification:%s", c.ClientCode),
		Run: func(ctx context.Context) error {
			if !photosSent {
				photosSent = true
				if err := f.sendDocuments(ctx, channel, &c); err != nil {
					f.logger.Warn(ctx, "document images not delivered", "client_code", c.ClientCode, "error", err)
				}
			}

			msgID, err := f.messenger.SendText(ctx, channel, ApplicantSummary(&c), menu.Decision(c.ID))
			if err != nil {
				return err
			}

			if _, err := f.verifications.Enqueue(ctx, c.ID, channel, msgID); err != nil {
				return notify.Permanent(err)
			}
			return nil
		},
	}
}

// sendDocuments sends the front and back images concurrently. A booklet
// passport has a single image.
func (f *Flow) sendDocuments(ctx context.Context, channel int64, c *models.Customer) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := f.messenger.SendPhoto(gctx, channel, chat.Photo{FileID: c.FrontImageID},
			i18n.T(staffLang, i18n.MsgStaffFront)+"\n"+c.ClientCode, nil)
		return err
	})
	if c.BackImageID != "" && c.BackImageID != c.FrontImageID {
		g.Go(func() error {
			_, err := f.messenger.SendPhoto(gctx, channel, chat.Photo{FileID: c.BackImageID},
				i18n.T(staffLang, i18n.MsgStaffBack)+"\n"+c.ClientCode, nil)
			return err
		})
	}
	return g.Wait()
}

// archiveJob copies the document images into the archive and stores the
// object keys on the customer.
func (f *Flow) archiveJob(c models.Customer) notify.Job {
	return notify.Job{
		Name: fmt.Sprintf("archive:%s", c.ClientCode),
		Run: func(ctx context.Context) error {
			front, back, err := f.archive.ArchiveCustomer(ctx, f.messenger, &c)
			if err != nil {
				return err
			}
			return f.customers.SetArchiveKeys(ctx, c.ID, front, back)
		},
	}
}
