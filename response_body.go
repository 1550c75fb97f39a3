package imap

// Greeting is the server's opening line, sent before any command is
// read: an untagged OK, PREAUTH, or BYE status response.
type Greeting struct {
	Status  StatusResponseType
	Code    ResponseCode
	CodeArg interface{}
	Text    string
}

// Response is one line the server sends in reply to a command: either
// the final tagged status response that ends the command, or an
// untagged data response that may precede it.
type Response struct {
	// Tag is empty for an untagged response.
	Tag    Tag
	Status *StatusResponse // non-nil for a status response (tagged or untagged)
	Data   Data            // non-nil for an untagged data response
}

// IsTagged reports whether this response carries the tag that ends a
// command.
func (r Response) IsTagged() bool { return r.Status != nil && r.Tag.String() != "" }

// Data is one untagged data response, one type per response this
// package knows how to parse and encode.
type Data interface {
	isData()
}

// DataCapability carries an untagged CAPABILITY response.
type DataCapability struct{ Capabilities []Cap }

// DataList carries an untagged LIST response.
type DataList struct{ List ListData }

// DataLsub carries an untagged LSUB response.
type DataLsub struct{ List ListData }

// DataStatus carries an untagged STATUS response.
type DataStatus struct{ Status StatusData }

// DataFlags carries an untagged FLAGS response.
type DataFlags struct{ Flags []Flag }

// DataExists carries an untagged EXISTS response.
type DataExists struct{ Count uint32 }

// DataRecent carries an untagged RECENT response (IMAP4rev1 only).
type DataRecent struct{ Count uint32 }

// DataExpunge carries an untagged EXPUNGE response.
type DataExpunge struct{ SeqNum SeqNum }

// DataVanished carries an untagged VANISHED response (QRESYNC).
type DataVanished struct {
	Earlier bool
	UIDs    SequenceSet
}

// DataFetch carries an untagged FETCH response.
type DataFetch struct{ Message FetchMessageData }

// DataSearch carries an untagged SEARCH or ESEARCH response.
type DataSearch struct{ Search SearchData }

// DataSort carries an untagged SORT response.
type DataSort struct{ Sort SortData }

// DataThread carries an untagged THREAD response.
type DataThread struct{ Thread ThreadData }

// DataNamespace carries an untagged NAMESPACE response.
type DataNamespace struct{ Namespace NamespaceData }

// DataID carries an untagged ID response.
type DataID struct{ ID IDData }

// DataACL carries an untagged ACL response.
type DataACL struct{ ACL ACLData }

// DataListRights carries an untagged LISTRIGHTS response.
type DataListRights struct{ ListRights ACLListRightsData }

// DataMyRights carries an untagged MYRIGHTS response.
type DataMyRights struct{ MyRights ACLMyRightsData }

// DataQuota carries an untagged QUOTA response.
type DataQuota struct{ Quota QuotaData }

// DataQuotaRoot carries an untagged QUOTAROOT response.
type DataQuotaRoot struct{ QuotaRoot QuotaRootData }

// DataMetadata carries an untagged METADATA response.
type DataMetadata struct{ Metadata MetadataData }

// DataEnabled carries an untagged ENABLED response (RFC 5161).
type DataEnabled struct{ Capabilities []Cap }

// DataUIDValidity carries the UIDVALIDITY response code surfaced as
// an untagged data item when a server chooses to report it outside a
// status response's brackets (some servers pair it with OK instead;
// both forms are accepted).
type DataUIDValidity struct{ UIDValidity uint32 }

func (DataCapability) isData()   {}
func (DataList) isData()         {}
func (DataLsub) isData()         {}
func (DataStatus) isData()       {}
func (DataFlags) isData()        {}
func (DataExists) isData()       {}
func (DataRecent) isData()       {}
func (DataExpunge) isData()      {}
func (DataVanished) isData()     {}
func (DataFetch) isData()        {}
func (DataSearch) isData()       {}
func (DataSort) isData()         {}
func (DataThread) isData()       {}
func (DataNamespace) isData()    {}
func (DataID) isData()           {}
func (DataACL) isData()          {}
func (DataListRights) isData()   {}
func (DataMyRights) isData()     {}
func (DataQuota) isData()        {}
func (DataQuotaRoot) isData()    {}
func (DataMetadata) isData()     {}
func (DataEnabled) isData()      {}
func (DataUIDValidity) isData()  {}
