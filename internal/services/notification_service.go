package services

import (
	"context"
	"strings"

	"quickgig/internal/email"
	"quickgig/internal/logger"
	"quickgig/internal/metrics"
	"quickgig/internal/models"
	"quickgig/internal/repositories"

	"gorm.io/gorm"
)

// NotificationService шлет письма о событиях откликов.
// Ошибки доставки только логируются: запрос, вызвавший уведомление, не падает.
type NotificationService interface {
	ApplicationCreated(ctx context.Context, db *gorm.DB, shift *models.Shift, app *models.Application)
	ApplicationStatusChanged(ctx context.Context, db *gorm.DB, shift *models.Shift, app *models.Application)
}

type NotificationServiceImpl struct {
	provider        email.Provider
	userRepo        repositories.UserRepository
	syntheticDomain string
}

// NewNotificationService. syntheticDomain - домен адресов, созданных из телефона; на них не пишем.
func NewNotificationService(provider email.Provider, userRepo repositories.UserRepository, syntheticDomain string) NotificationService {
	return &NotificationServiceImpl{
		provider:        provider,
		userRepo:        userRepo,
		syntheticDomain: strings.ToLower(syntheticDomain),
	}
}

func (s *NotificationServiceImpl) ApplicationCreated(ctx context.Context, db *gorm.DB, shift *models.Shift, app *models.Application) {
	users, err := s.userRepo.FindByIDs(db, []uint{shift.EmployerID, app.WorkerID})
	if err != nil {
		logger.CtxWithError(ctx, "notification: failed to load users", err, "application_id", app.ID)
		return
	}
	employer, worker := users[shift.EmployerID], users[app.WorkerID]

	data := email.TemplateData{
		"EmployerName": employer.Name,
		"WorkerName":   worker.Name,
		"ShiftTitle":   shift.Title,
		"StartAt":      shift.StartAt.Format("2006-01-02 15:04"),
	}
	if app.Message != nil {
		data["Message"] = *app.Message
	}

	s.deliver(ctx, "application_created", employer, "New application: "+shift.Title, email.TemplateApplicationCreated, data)
}

func (s *NotificationServiceImpl) ApplicationStatusChanged(ctx context.Context, db *gorm.DB, shift *models.Shift, app *models.Application) {
	worker, err := s.userRepo.FindByID(db, app.WorkerID)
	if err != nil {
		logger.CtxWithError(ctx, "notification: failed to load worker", err, "application_id", app.ID)
		return
	}

	data := email.TemplateData{
		"WorkerName": worker.Name,
		"ShiftTitle": shift.Title,
		"StartAt":    shift.StartAt.Format("2006-01-02 15:04"),
		"Status":     string(app.Status),
	}

	s.deliver(ctx, "application_status", *worker, "Application "+string(app.Status)+": "+shift.Title, email.TemplateApplicationStatus, data)
}

func (s *NotificationServiceImpl) deliver(ctx context.Context, kind string, to models.User, subject, templateName string, data email.TemplateData) {
	if !s.reachable(to) {
		metrics.NotificationsSent.WithLabelValues(kind, "skipped").Inc()
		logger.CtxDebug(ctx, "notification skipped", "kind", kind, "recipient_id", to.ID)
		return
	}

	if err := s.provider.SendTemplate([]string{to.Email}, subject, templateName, data); err != nil {
		metrics.NotificationsSent.WithLabelValues(kind, "failed").Inc()
		logger.CtxWithError(ctx, "notification delivery failed", err, "kind", kind, "recipient_id", to.ID)
		return
	}
	metrics.NotificationsSent.WithLabelValues(kind, "sent").Inc()
}

// reachable - у пользователя настоящий адрес
func (s *NotificationServiceImpl) reachable(u models.User) bool {
	if u.ID == 0 || u.Email == "" {
		return false
	}
	return !strings.HasSuffix(strings.ToLower(u.Email), "@"+s.syntheticDomain)
}
