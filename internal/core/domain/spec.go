package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// TestType identifies the kind of tests a test specification declares.
type TestType string

// TestTypeUnit is the only supported test type.
const TestTypeUnit TestType = "unit"

// Capitalized returns the test type with its first letter upper-cased, as used in labels.
func (t TestType) Capitalized() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// ProductType is the native product type of a target.
type ProductType string

const (
	// ProductTypeStaticLibrary is a static library product.
	ProductTypeStaticLibrary ProductType = "static_library"
	// ProductTypeFramework is a dynamic framework product.
	ProductTypeFramework ProductType = "framework"
	// ProductTypeBundle is a resource bundle product.
	ProductTypeBundle ProductType = "bundle"
	// ProductTypeApplication is an application product.
	ProductTypeApplication ProductType = "application"
	// ProductTypeUnitTestBundle is a unit test bundle product.
	ProductTypeUnitTestBundle ProductType = "unit_test_bundle"
	// ProductTypeAppExtension is an app extension product.
	ProductTypeAppExtension ProductType = "app_extension"
	// ProductTypeWatchExtension is a watchOS 1 extension product.
	ProductTypeWatchExtension ProductType = "watch_extension"
	// ProductTypeWatch2Extension is a watchOS 2 extension product.
	ProductTypeWatch2Extension ProductType = "watch2_extension"
	// ProductTypeTVExtension is a tvOS extension product.
	ProductTypeTVExtension ProductType = "tv_extension"
	// ProductTypeMessagesExtension is an iMessage extension product.
	ProductTypeMessagesExtension ProductType = "messages_extension"
)

// IsExtension reports whether the product type is one of the application extension types.
func (p ProductType) IsExtension() bool {
	switch p {
	case ProductTypeAppExtension, ProductTypeWatchExtension, ProductTypeWatch2Extension,
		ProductTypeTVExtension, ProductTypeMessagesExtension:
		return true
	default:
		return false
	}
}

// ProductTypeForTestType maps a test type to the product type of its bundle.
func ProductTypeForTestType(t TestType) (ProductType, error) {
	switch t {
	case TestTypeUnit:
		return ProductTypeUnitTestBundle, nil
	default:
		return "", zerr.With(ErrUnknownTestType, "test_type", string(t))
	}
}

// TestTypeForProductType maps a test bundle product type back to its test type.
func TestTypeForProductType(p ProductType) (TestType, error) {
	switch p {
	case ProductTypeUnitTestBundle:
		return TestTypeUnit, nil
	default:
		return "", zerr.With(ErrUnknownProductType, "product_type", string(p))
	}
}

// Consumer is the per-platform view of a specification.
type Consumer struct {
	Platform          PlatformName
	Libraries         []string
	Frameworks        []string
	WeakFrameworks    []string
	PodTargetXCConfig map[string]string
	RequiresARC       bool
	SwiftVersion      string
}

// Specification describes one pod, subspec or test spec.
type Specification struct {
	// Name is the full name, e.g. "CoconutLib/Tests".
	Name InternedString
	// TestType is set for test specifications only.
	TestType        TestType
	RequiresAppHost bool
	Consumers       map[PlatformName]*Consumer
}

// RootName returns the name of the root specification.
func (s *Specification) RootName() string {
	name := s.Name.String()
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return name
}

// IsRoot reports whether the specification is a root spec.
func (s *Specification) IsRoot() bool {
	return !strings.Contains(s.Name.String(), "/")
}

// IsTestSpecification reports whether the specification declares tests.
func (s *Specification) IsTestSpecification() bool {
	return s.TestType != ""
}

// Consumer returns the consumer for the given platform, or an empty consumer.
func (s *Specification) Consumer(platform PlatformName) *Consumer {
	if c, ok := s.Consumers[platform]; ok && c != nil {
		return c
	}
	return &Consumer{Platform: platform}
}

// FileAccessor exposes the files one specification contributes to a pod target.
type FileAccessor struct {
	Spec                      *Specification
	Platform                  PlatformName
	SourceFiles               []string
	Resources                 []string
	ResourceBundles           map[string][]string
	VendoredStaticFrameworks  []string
	VendoredStaticLibraries   []string
	VendoredDynamicFrameworks []string
	VendoredDynamicLibraries  []string
}

// SpecConsumer returns the consumer of the accessor's spec on the accessor's platform.
func (fa *FileAccessor) SpecConsumer() *Consumer {
	return fa.Spec.Consumer(fa.Platform)
}

// VendoredStaticArtifacts returns the vendored static frameworks followed by the static libraries.
func (fa *FileAccessor) VendoredStaticArtifacts() []string {
	out := make([]string, 0, len(fa.VendoredStaticFrameworks)+len(fa.VendoredStaticLibraries))
	out = append(out, fa.VendoredStaticFrameworks...)
	return append(out, fa.VendoredStaticLibraries...)
}

// VendoredDynamicArtifacts returns the vendored dynamic frameworks followed by the dynamic libraries.
func (fa *FileAccessor) VendoredDynamicArtifacts() []string {
	out := make([]string, 0, len(fa.VendoredDynamicFrameworks)+len(fa.VendoredDynamicLibraries))
	out = append(out, fa.VendoredDynamicFrameworks...)
	return append(out, fa.VendoredDynamicLibraries...)
}

// ResourceBundleNames returns the declared resource bundle names sorted by name.
func (fa *FileAccessor) ResourceBundleNames() []string {
	return sortedKeys(fa.ResourceBundles)
}

var headerExtensions = map[string]bool{".h": true, ".hpp": true, ".hh": true, ".hxx": true, ".ipp": true, ".tpp": true}

// HasCompilableSources reports whether any source file is not a header.
func (fa *FileAccessor) HasCompilableSources() bool {
	for _, f := range fa.SourceFiles {
		if !headerExtensions[strings.ToLower(filepath.Ext(f))] {
			return true
		}
	}
	return false
}

// HasSwiftSources reports whether any source file is a Swift file.
func (fa *FileAccessor) HasSwiftSources() bool {
	for _, f := range fa.SourceFiles {
		if strings.EqualFold(filepath.Ext(f), ".swift") {
			return true
		}
	}
	return false
}
