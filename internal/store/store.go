// Package store 是四类记录的持久化入口，对上层屏蔽 GORM 细节
package store

import (
	"context"
	"errors"
	"strconv"

	"campus-notifier/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid identifier")
)

// ParseID 校验路径参数中的记录 ID，格式错误返回 ErrInvalidID
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// Page 分页参数，Page 从 1 开始
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type OpportunityFilter struct {
	Category model.Category
	Location model.WorkLocation
}

type Users interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id uint) error
	// ListUserEmails 返回所有非空邮箱，每次调用都重新查询
	ListUserEmails(ctx context.Context) ([]string, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
	// ListEvents 按开始时间升序分页，返回全量计数
	ListEvents(ctx context.Context, p Page) ([]model.Event, int64, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id uint) error
}

type Opportunities interface {
	CreateOpportunity(ctx context.Context, o *model.Opportunity) error
	GetOpportunity(ctx context.Context, id uint) (*model.Opportunity, error)
	// ListOpportunities 按创建时间倒序分页，计数基于过滤后的集合
	ListOpportunities(ctx context.Context, f OpportunityFilter, p Page) ([]model.Opportunity, int64, error)
	UpdateOpportunity(ctx context.Context, o *model.Opportunity) error
	DeleteOpportunity(ctx context.Context, id uint) error
}

type Registrations interface {
	CreateRegistration(ctx context.Context, r *model.EventRegistration) error
	GetRegistration(ctx context.Context, id uint) (*model.EventRegistration, error)
	// ListRegistrations eventID 为 0 时不过滤
	ListRegistrations(ctx context.Context, eventID uint) ([]model.EventRegistration, error)
	RegistrationExists(ctx context.Context, eventID, userID uint) (bool, error)
	DeleteRegistration(ctx context.Context, id uint) error
}

type Store interface {
	Users
	Events
	Opportunities
	Registrations
	Ping(ctx context.Context) error
}
