package models

type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

type CreateAgentRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      Role   `json:"role" validate:"omitempty,oneof=agent admin"`
	AgentID   Number `json:"agent_id"`
	Contact   Number `json:"contact"`
	ImageFields
}

type EditAgentRequest struct {
	UserID    string `json:"userId" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      Role   `json:"role" validate:"omitempty,oneof=agent admin"`
	AgentID   Number `json:"agent_id"`
	Contact   Number `json:"contact"`
	ImageFields
}

type DeleteAgentRequest struct {
	UserID string `json:"userId" validate:"required"`
}
