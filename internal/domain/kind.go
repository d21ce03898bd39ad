package domain

// Kind is the wire discriminator selecting which Record a {kind,data} object holds.
type Kind string

const (
	KindMore          Kind = "more"
	KindListing       Kind = "Listing"
	KindComment       Kind = "t1"
	KindAccount       Kind = "t2"
	KindLink          Kind = "t3"
	KindMessage       Kind = "t4"
	KindSubreddit     Kind = "t5"
	KindAward         Kind = "t6"
	KindPromoCampaign Kind = "t8"
)

// ParseKind resolves a wire string. The set is closed: anything not listed
// above is reported as unknown.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	if _, ok := decoders[k]; !ok {
		return "", false
	}
	return k, true
}

func (k Kind) String() string {
	return string(k)
}
