package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrTenantIDRequired      = errors.New("tenant id missing from identity context")
	ErrEmployeeIDRequired    = errors.New("employee id missing from identity context")
)
