package imap

// SearchKeyModSeq matches messages whose mod-sequence is at least
// ModSeq (CONDSTORE, RFC 7162). MetadataName/MetadataType are set only
// for the entry-name-qualified form (e.g. "/flags/\\Answered" priv).
type SearchKeyModSeq struct {
	ModSeq       uint64
	MetadataName string
	MetadataType string // "shared", "priv", or "all"
}

func (SearchKeyModSeq) isSearchKey() {}

// SearchKeyYounger matches messages whose internal date is within the
// last Seconds seconds (RFC 5032 WITHIN extension).
type SearchKeyYounger struct{ Seconds uint32 }

// SearchKeyOlder matches messages whose internal date is more than
// Seconds seconds ago (RFC 5032 WITHIN extension).
type SearchKeyOlder struct{ Seconds uint32 }

func (SearchKeyYounger) isSearchKey() {}
func (SearchKeyOlder) isSearchKey()   {}

// SearchKeySaveResult tags the search for later reference via '$'
// (SEARCHRES, RFC 5182); it carries no data of its own.
type SearchKeySaveResult struct{}

func (SearchKeySaveResult) isSearchKey() {}
