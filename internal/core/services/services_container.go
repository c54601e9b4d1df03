package services

import (
	portsrepo "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/repositories"
	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Post = NewPostService(repos.PostRepo, repos.DepartmentRepo, repos.ActivityRepo)
	container.Department = NewDepartmentService(repos.DepartmentRepo, repos.UserRepo, repos.PostRepo, repos.ActivityRepo)
	container.Activity = NewActivityService(repos.ActivityRepo)

	return container
}
