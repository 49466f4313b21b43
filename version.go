package hollow

// Version is the release of the engine. Builds override it with -ldflags "-X".
var Version = "0.3.0"
