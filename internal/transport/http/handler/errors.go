package handler

const (
	errInternalServer     = "Internal server error"
	errUserNotFound       = "User not found"
	errInvalidCode        = "Invalid code"
	errUserExists         = "User already exists"
	errUserNotVerified    = "User is not verified"
	errInvalidCredentials = "Invalid credentials"
	errProjectNotFound    = "Project not found"
	errJobNotFound        = "Job not found"
	errJobFinished        = "Job already finished"
)
