package handler

import (
	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		DateOfBirth:     req.DateOfBirth,
		Address:         req.Address,
		Role:            req.Role,
		Specialization:  req.Specialization,
		AssignedDoctor:  req.AssignedDoctor,
		Department:      req.Department,
	}
}

func toProfileInput(req profileRequest) ports.ProfileInput {
	return ports.ProfileInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		Specialization: req.Specialization,
		AssignedDoctor: req.AssignedDoctor,
		Department:     req.Department,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	spec, doctor, dept := domain.DetailFields(u.Details)
	return &userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role().String(),
		Phone:          u.Phone,
		DateOfBirth:    u.DateOfBirth,
		Address:        u.Address,
		Specialization: spec,
		AssignedDoctor: doctor,
		Department:     dept,
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	}
}

func toUsersResponse(users []*domain.User) usersResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return usersResponse{Users: out, Total: len(out)}
}

func toSessionResponse(s domain.Session) sessionResponse {
	resp := sessionResponse{Status: s.State.String()}
	if s.Authenticated() {
		resp.User = toUserResponse(s.User)
		resp.Menu = domain.MenuFor(s.User.Role())
	}
	return resp
}
