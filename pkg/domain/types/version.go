package types

// Version is the relboard version, overwritten at build time with -ldflags
var Version = "dev"

// ServiceName is reported by the health endpoint
const ServiceName = "relboard"
