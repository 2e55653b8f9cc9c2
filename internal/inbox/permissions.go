package inbox

import "context"

// StaticPermissions is the permission collaborator for CLI use, where
// consent is recorded in configuration rather than prompted for. The
// device prompt UI lives outside this core.
type StaticPermissions struct {
	Granted bool
}

func (p StaticPermissions) HasReadAccess(context.Context) (bool, error) {
	return p.Granted, nil
}

func (p StaticPermissions) RequestReadAccess(context.Context) (bool, error) {
	return p.Granted, nil
}
