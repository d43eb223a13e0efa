package sword

import (
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

func appName(localName string) base.XmlName {
	return base.NewXmlName(base.PrefixApp, localName, base.NamespaceApp)
}

func swordName(localName string) base.XmlName {
	return base.NewXmlName(base.PrefixSword, localName, base.NamespaceSword)
}

var (
	ServiceName    = appName("service")
	WorkspaceName  = appName("workspace")
	CollectionName = appName("collection")
	AcceptName     = appName("accept")

	VersionName            = swordName("version")
	VerboseName            = swordName("verbose")
	NoOpName               = swordName("noOp")
	MaxUploadSizeName      = swordName("maxUploadSize")
	AcceptPackagingName    = swordName("acceptPackaging")
	CollectionPolicyName   = swordName("collectionPolicy")
	TreatmentName          = swordName("treatment")
	MediationName          = swordName("mediation")
	ServiceLinkName        = swordName("service")
	VerboseDescriptionName = swordName("verboseDescription")
	PackagingName          = swordName("packaging")
	UserAgentName          = swordName("userAgent")
	ErrorName              = swordName("error")

	AbstractName = base.NewXmlName(base.PrefixDCTerms, "abstract", base.NamespaceDCTerms)
)

// Version is the SWORD protocol version implemented by this package.
const Version string = "1.3"

func NewVersion(version string) *base.StringElement {
	return base.NewStringElement(VersionName, version)
}

func NewVerbose(verbose bool) *base.BooleanElement {
	return base.NewBooleanElement(VerboseName, verbose)
}

func NewNoOp(noOp bool) *base.BooleanElement {
	return base.NewBooleanElement(NoOpName, noOp)
}

func NewMaxUploadSize(kb int) *base.IntegerElement {
	return base.NewIntegerElement(MaxUploadSizeName, kb)
}

func NewAccept(mediaType string) *base.StringElement {
	return base.NewStringElement(AcceptName, mediaType)
}

func NewCollectionPolicy(policy string) *base.StringElement {
	return base.NewStringElement(CollectionPolicyName, policy)
}

func NewTreatment(treatment string) *base.StringElement {
	return base.NewStringElement(TreatmentName, treatment)
}

func NewMediation(mediation bool) *base.BooleanElement {
	return base.NewBooleanElement(MediationName, mediation)
}

func NewServiceLink(href string) *base.StringElement {
	return base.NewStringElement(ServiceLinkName, href)
}

func NewVerboseDescription(description string) *base.StringElement {
	return base.NewStringElement(VerboseDescriptionName, description)
}

func NewPackaging(packaging string) *base.StringElement {
	return base.NewStringElement(PackagingName, packaging)
}

func NewUserAgent(userAgent string) *base.StringElement {
	return base.NewStringElement(UserAgentName, userAgent)
}

func NewAbstract(abstract string) *base.StringElement {
	return base.NewStringElement(AbstractName, abstract)
}
