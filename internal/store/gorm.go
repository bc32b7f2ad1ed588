package store

import (
	"context"
	"errors"

	"campus-notifier/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 基于 GORM 的 Store 实现，DB 需开启 TranslateError
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate 把 GORM 错误归一为包内哨兵错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (s *GormStore) first(ctx context.Context, dst any, query any, args ...any) error {
	return translate(s.db.WithContext(ctx).Where(query, args...).First(dst).Error)
}

func (s *GormStore) create(ctx context.Context, v any) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (s *GormStore) save(ctx context.Context, v any) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error)
}

func (s *GormStore) delete(ctx context.Context, v any, id uint) error {
	res := s.db.WithContext(ctx).Delete(v, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- users ----

func (s *GormStore) CreateUser(ctx context.Context, u *model.User) error {
	return s.create(ctx, u)
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := s.first(ctx, &u, "id = ?", id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.first(ctx, &u, "email = ?", email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, translate(err)
}

func (s *GormStore) UpdateUser(ctx context.Context, u *model.User) error {
	return s.save(ctx, u)
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.User{}, id)
}

func (s *GormStore) ListUserEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email <> ''").
		Order("id").
		Pluck("email", &emails).Error
	return emails, translate(err)
}

// ---- events ----

func (s *GormStore) CreateEvent(ctx context.Context, e *model.Event) error {
	return s.create(ctx, e)
}

func (s *GormStore) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	var e model.Event
	if err := s.first(ctx, &e, "id = ?", id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *GormStore) ListEvents(ctx context.Context, p Page) ([]model.Event, int64, error) {
	var (
		total  int64
		events []model.Event
	)
	db := s.db.WithContext(ctx).Model(&model.Event{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := db.Order("opening_date ASC").Order("id").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return events, total, nil
}

func (s *GormStore) UpdateEvent(ctx context.Context, e *model.Event) error {
	return s.save(ctx, e)
}

func (s *GormStore) DeleteEvent(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.Event{}, id)
}

// ---- opportunities ----

func (s *GormStore) CreateOpportunity(ctx context.Context, o *model.Opportunity) error {
	return s.create(ctx, o)
}

func (s *GormStore) GetOpportunity(ctx context.Context, id uint) (*model.Opportunity, error) {
	var o model.Opportunity
	if err := s.first(ctx, &o, "id = ?", id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *GormStore) ListOpportunities(ctx context.Context, f OpportunityFilter, p Page) ([]model.Opportunity, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Opportunity{})
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		db = db.Where("location = ?", f.Location)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var list []model.Opportunity
	err := db.Order("created_at DESC").Order("id DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return list, total, nil
}

func (s *GormStore) UpdateOpportunity(ctx context.Context, o *model.Opportunity) error {
	return s.save(ctx, o)
}

func (s *GormStore) DeleteOpportunity(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.Opportunity{}, id)
}

// ---- registrations ----

// withRefs 预加载报名关联的活动与用户摘要
func (s *GormStore) withRefs(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Event", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "opening_date", "closing_date", "location")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "last_name", "email", "role")
		})
}

func (s *GormStore) CreateRegistration(ctx context.Context, r *model.EventRegistration) error {
	return s.create(ctx, r)
}

func (s *GormStore) GetRegistration(ctx context.Context, id uint) (*model.EventRegistration, error) {
	var r model.EventRegistration
	if err := translate(s.withRefs(ctx).First(&r, id).Error); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) ListRegistrations(ctx context.Context, eventID uint) ([]model.EventRegistration, error) {
	db := s.withRefs(ctx)
	if eventID != 0 {
		db = db.Where("event_id = ?", eventID)
	}
	var list []model.EventRegistration
	err := db.Order("registration_date DESC").Order("id DESC").Find(&list).Error
	return list, translate(err)
}

func (s *GormStore) RegistrationExists(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (s *GormStore) DeleteRegistration(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.EventRegistration{}, id)
}
