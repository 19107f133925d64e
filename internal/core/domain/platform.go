package domain

import (
	"github.com/hashicorp/go-version"
	"go.trai.ch/zerr"
)

// PlatformName is the symbolic name of an Apple platform.
type PlatformName string

const (
	// PlatformIOS is iOS.
	PlatformIOS PlatformName = "ios"
	// PlatformOSX is macOS.
	PlatformOSX PlatformName = "osx"
	// PlatformTVOS is tvOS.
	PlatformTVOS PlatformName = "tvos"
	// PlatformWatchOS is watchOS.
	PlatformWatchOS PlatformName = "watchos"
)

// ParsePlatformName validates a platform name.
func ParsePlatformName(s string) (PlatformName, error) {
	switch n := PlatformName(s); n {
	case PlatformIOS, PlatformOSX, PlatformTVOS, PlatformWatchOS:
		return n, nil
	default:
		return "", zerr.With(ErrUnknownPlatform, "platform", s)
	}
}

// Platform is a platform name paired with a deployment target.
type Platform struct {
	Name             PlatformName
	DeploymentTarget string
}

// StringName returns the human readable name used in target labels.
func (p Platform) StringName() string {
	return p.Name.StringName()
}

// StringName returns the human readable name used in target labels.
func (n PlatformName) StringName() string {
	switch n {
	case PlatformIOS:
		return "iOS"
	case PlatformOSX:
		return "macOS"
	case PlatformTVOS:
		return "tvOS"
	case PlatformWatchOS:
		return "watchOS"
	default:
		return string(n)
	}
}

// DeploymentTargetSetting returns the build setting key holding the deployment target.
func (n PlatformName) DeploymentTargetSetting() string {
	switch n {
	case PlatformOSX:
		return "MACOSX_DEPLOYMENT_TARGET"
	case PlatformTVOS:
		return "TVOS_DEPLOYMENT_TARGET"
	case PlatformWatchOS:
		return "WATCHOS_DEPLOYMENT_TARGET"
	default:
		return "IPHONEOS_DEPLOYMENT_TARGET"
	}
}

// SupportsDynamicFrameworks reports whether the platform can embed dynamic frameworks.
func (p Platform) SupportsDynamicFrameworks() bool {
	if p.Name != PlatformIOS || p.DeploymentTarget == "" {
		return true
	}
	v, err := version.NewVersion(p.DeploymentTarget)
	if err != nil {
		return false
	}
	return !v.LessThan(minimumDynamicFrameworksIOS)
}

var minimumDynamicFrameworksIOS = version.Must(version.NewVersion("8.0"))
