package types

// Version is the version of ytlink. It is overwritten at build time by
// -ldflags "-X github.com/m-mizutani/ytlink/pkg/domain/types.Version=..."
var Version = "dev"
