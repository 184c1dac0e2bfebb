package payment

import (
	"context"
	"net/mail"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, pmt Payment, exec ...core.DBExecutor) (Payment, error)
		QueryAllPayments(ctx context.Context, exec ...core.DBExecutor) ([]Payment, error)
	}

	Service interface {
		// Record persists a payment and marks it successful right away:
		// payment confirmation is trusted to happen out of band, there is
		// no gateway integration.
		Record(ctx context.Context, np NewPayment, recordedBy user.User) (Payment, error)
		QueryAll(ctx context.Context) ([]Payment, error)
	}

	service struct {
		repo    Repository
		stdRepo student.Repository
		usrRepo user.Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, stdRepo student.Repository, usrRepo user.Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		stdRepo: stdRepo,
		usrRepo: usrRepo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) Record(ctx context.Context, np NewPayment, recordedBy user.User) (Payment, error) {
	pmt := Payment{
		StudentID:  null.NewString(np.StudentID, np.StudentID != ""),
		Purpose:    core.CleanString(np.Purpose),
		Method:     np.Method,
		Amount:     np.Amount,
		Reference:  null.NewString(np.Reference, np.Reference != ""),
		Status:     StatusSuccess,
		Meta:       np.Meta,
		RecordedBy: recordedBy.ID,
		CreatedAt:  time.Now().UTC(),
	}

	// resolve the student link from the payer email when no id was provided;
	// a miss leaves the payment unlinked rather than failing it
	if np.StudentID == "" && np.UserEmail != "" {
		if usr, err := svc.usrRepo.GetUser(ctx, user.GetFilter{Email: core.CleanString(np.UserEmail, true)}); err == nil {
			if std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{UserID: usr.ID}); err == nil {
				pmt.StudentID = null.StringFrom(std.ID)
			}
		}
	}

	pmt, err := svc.repo.CreatePayment(ctx, pmt)
	if err != nil {
		return Payment{}, err
	}

	svc.sendReceiptMail(recordedBy, pmt)
	return pmt, nil
}

func (svc *service) QueryAll(ctx context.Context) ([]Payment, error) {
	return svc.repo.QueryAllPayments(ctx)
}

func (svc *service) sendReceiptMail(usr user.User, pmt Payment) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Payment Received",
		TemplateName: "payment-receipt",
		TemplateData: map[string]interface{}{
			"Name":      usr.Name,
			"AppName":   svc.conf.AppName,
			"Amount":    pmt.Amount,
			"Method":    pmt.Method,
			"Purpose":   pmt.Purpose,
			"Reference": pmt.Reference.String,
		},
	})
}
