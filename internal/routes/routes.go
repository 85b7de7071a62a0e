package routes

const (
	// Health
	Health = "/health"

	// Simple intake (legacy form, kept for returning users)
	Config            = "/api/config"
	Submit            = "/api/submit"
	FirstSubmitSimple = "/api/first-submit-simple"

	// Duo0 wizard endpoints
	DuoConfig = "/api/duo/config"
	DuoPlans  = "/api/duo/plans"
	DuoSubmit = "/api/duo/submit"
	DuoUpdate = "/api/duo/update"
)
