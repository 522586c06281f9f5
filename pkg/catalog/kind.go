package catalog

// Kind tags a finding or a load error.
type Kind string

const (
	KindBrokenHubLink    Kind = "broken-hub-link"
	KindOrphanMembership Kind = "orphan-membership"
	KindDuplicateSlug    Kind = "duplicate-slug"
	KindDuplicateID      Kind = "duplicate-id"
	KindUnreachable      Kind = "unreachable-artwork"
	KindAmbiguousThumb   Kind = "ambiguous-thumbnail-path"
	KindUnparsableRecord Kind = "unparsable-record"
	KindMissingSource    Kind = "missing-source"
)

// kindOrder fixes the order kinds appear in a report.
var kindOrder = []Kind{
	KindDuplicateID,
	KindDuplicateSlug,
	KindBrokenHubLink,
	KindOrphanMembership,
	KindUnreachable,
	KindAmbiguousThumb,
	KindUnparsableRecord,
	KindMissingSource,
}

func (k Kind) rank() int {
	for i, o := range kindOrder {
		if o == k {
			return i
		}
	}
	return len(kindOrder)
}
