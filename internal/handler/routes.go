package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
const APIV1Prefix = "/api/v1"

// DefaultUserHeader carries the opaque id of the calling user.
const DefaultUserHeader = "X-User-ID"
