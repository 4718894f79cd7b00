package booking

import (
	"context"
	"fmt"

	"github.com/Varun5711/autocare/internal/client"
	"github.com/Varun5711/autocare/internal/logger"
	"github.com/Varun5711/autocare/internal/models"
	"github.com/Varun5711/autocare/internal/session"
)

type API interface {
	RequestUploadURL(ctx context.Context, token, fileName, fileType string) (*models.UploadTarget, error)
	PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error
	CreateAppointment(ctx context.Context, token string, draft models.AppointmentDraft) (*models.Appointment, error)
}

type Refresher interface {
	Refresh(ctx context.Context)
}

// Form is what the user filled in. Image is optional.
type Form struct {
	CarMake                string
	CarModel               string
	CarYear                string
	ServiceType            string
	Date                   string
	Time                   string
	Description            string
	NotificationPreference bool
	Image                  *Image
}

func (f Form) Draft(imageURL string) models.AppointmentDraft {
	return models.AppointmentDraft{
		CarMake:                f.CarMake,
		CarModel:               f.CarModel,
		CarYear:                f.CarYear,
		ServiceType:            f.ServiceType,
		Date:                   f.Date,
		Time:                   f.Time,
		Description:            f.Description,
		NotificationPreference: f.NotificationPreference,
		ImageURL:               imageURL,
	}
}

// Submitter performs "upload the image if any, then create the appointment"
// as one operation. A failed upload never reaches creation.
type Submitter struct {
	session   *session.Session
	api       API
	refresher Refresher
	log       *logger.Logger
}

func NewSubmitter(sess *session.Session, api API, refresher Refresher, log *logger.Logger) *Submitter {
	if log == nil {
		log = logger.Discard()
	}
	return &Submitter{
		session:   sess,
		api:       api,
		refresher: refresher,
		log:       log,
	}
}

func (s *Submitter) Submit(ctx context.Context, form Form) (*models.Appointment, error) {
	st := s.session.State()
	if !st.Authenticated() {
		return nil, &Error{Kind: ErrNotLoggedIn, Message: ErrNotLoggedIn.Error()}
	}

	imageURL := ""
	if !form.Image.Empty() {
		var err error
		imageURL, err = s.Upload(ctx, st.Token, form.Image)
		if err != nil {
			return nil, err
		}
	}

	created, err := s.api.CreateAppointment(ctx, st.Token, form.Draft(imageURL))
	if err != nil {
		s.log.Warn("create appointment failed: %v", err)
		return nil, &Error{Kind: ErrBookingFailed, Message: client.UserMessage(err, ErrBookingFailed.Error()), Err: err}
	}

	s.log.Info("booked %s on %s %s", form.ServiceType, form.Date, form.Time)
	if s.refresher != nil {
		s.refresher.Refresh(ctx)
	}
	return created, nil
}

// Upload obtains a presigned target, PUTs the bytes to it and returns the
// durable image URL that came with the target.
func (s *Submitter) Upload(ctx context.Context, token string, img *Image) (string, error) {
	if img.Empty() {
		return "", uploadError(ErrNoImage.Error(), ErrNoImage)
	}

	target, err := s.api.RequestUploadURL(ctx, token, img.Name, img.ContentType)
	if err != nil {
		s.log.Warn("upload URL request for %s failed: %v", img.Name, err)
		return "", uploadError(client.UserMessage(err, ErrUploadURLFailed.Error()), fmt.Errorf("%w: %w", ErrUploadURLFailed, err))
	}

	if err := s.api.PutObject(ctx, target.UploadURL, img.ContentType, img.Data); err != nil {
		s.log.Warn("presigned upload of %s failed: %v", img.Name, err)
		return "", uploadError(ErrImageTransferFailed.Error(), fmt.Errorf("%w: %w", ErrImageTransferFailed, err))
	}

	s.log.Info("uploaded %s (%d bytes)", img.Name, len(img.Data))
	return target.ImageURL, nil
}

func uploadError(msg string, cause error) error {
	return &Error{
		Kind:    ErrUploadFailed,
		Message: ErrUploadFailed.Error() + ": " + msg,
		Err:     cause,
	}
}
