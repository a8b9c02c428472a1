package clinicchat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
)

type ListMyThreads struct {
	repo domain.Repository
}

func NewListMyThreads(repo domain.Repository) *ListMyThreads {
	return &ListMyThreads{repo: repo}
}

// Execute lists the actor's threads, most recently active first.
func (uc *ListMyThreads) Execute(ctx context.Context, actor access.Principal) ([]domain.ThreadSummary, error) {
	return uc.repo.ListThreadsByUser(ctx, actor.ID)
}

type ListHospitalThreads struct {
	repo domain.Repository
}

func NewListHospitalThreads(repo domain.Repository) *ListHospitalThreads {
	return &ListHospitalThreads{repo: repo}
}

// Execute lists threads of the hospital the actor administers. Users who
// administer no hospital get an empty list.
func (uc *ListHospitalThreads) Execute(ctx context.Context, actor access.Principal) ([]domain.ThreadSummary, error) {
	if !access.RoleOf(actor).Known() {
		return []domain.ThreadSummary{}, nil
	}

	h, err := uc.repo.FindHospitalByAdmin(ctx, actor.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.ThreadSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	return uc.repo.ListThreadsByHospital(ctx, h.ID)
}
