package v1

// BasePath is the URL prefix of all versioned API routes.
const BasePath = "/api/v1"
