package extgate

import "github.com/corvid-mail/imapcodec"

// Gateable lists the capabilities spec.md's extension-gating component
// names as subject to a feature profile (RFC core grammar, e.g.
// IMAP4rev1 itself, is never gated).
var Gateable = []imap.Cap{
	imap.CapIdle,
	imap.CapCompressDeflate,
	imap.CapEnable,
	imap.CapMove,
	imap.CapUnselect,
	imap.CapQuota,
	imap.CapSort,
	imap.CapThreadOrderedSubject,
	imap.CapThreadReferences,
	imap.CapACL,
	imap.CapMetadata,
	imap.CapCondStore,
	imap.CapQResync,
}

// Enabled reports whether cap is turned on under this profile. A
// capability outside the Gateable list is always enabled: it belongs
// to the core grammar, not to the extension-gating component.
func (p *Profile) Enabled(cap imap.Cap) bool {
	if !isGateable(cap) {
		return true
	}
	return p.FeatureSet().Has(cap)
}

// FeatureSet is the runtime-queryable form of a Profile: the set of
// capabilities a wire.ParseCommand/wire.ParseResponse caller should
// treat as enabled. A nil *FeatureSet means no gating is configured —
// every extension parses unconditionally, matching this codec's
// behavior before a profile is wired in.
type FeatureSet struct {
	caps *imap.CapSet
}

// NewFeatureSet builds a FeatureSet enabling exactly the given capabilities.
func NewFeatureSet(caps ...imap.Cap) *FeatureSet {
	return &FeatureSet{caps: imap.NewCapSet(caps...)}
}

// Has reports whether cap is present in the set. A nil FeatureSet has
// no capabilities.
func (fs *FeatureSet) Has(cap imap.Cap) bool {
	if fs == nil || fs.caps == nil {
		return false
	}
	return fs.caps.Has(cap)
}

// Len returns the number of capabilities in the set.
func (fs *FeatureSet) Len() int {
	if fs == nil || fs.caps == nil {
		return 0
	}
	return fs.caps.Len()
}

// Enabled reports whether a gateable capability should parse as
// enabled under fs. A nil FeatureSet is permissive: every gateable
// capability parses, matching a deployment that hasn't wired a
// profile in yet. A non-nil FeatureSet enforces Has.
func (fs *FeatureSet) Enabled(cap imap.Cap) bool {
	if fs == nil {
		return true
	}
	return fs.Has(cap)
}

func isGateable(cap imap.Cap) bool {
	for _, g := range Gateable {
		if g == cap {
			return true
		}
	}
	return false
}
