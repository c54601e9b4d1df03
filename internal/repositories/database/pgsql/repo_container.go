package pgsql

import (
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	postRepo := newPgxPostRepository(dbPool)
	departmentRepo := newPgxDepartmentRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PostRepo:       postRepo,
		DepartmentRepo: departmentRepo,
		UserRepo:       userRepo,
		ActivityRepo:   activityRepo,
	}
}
