package imap

// Command is a complete client command: a tag and a body naming the
// verb and its arguments.
type Command struct {
	Tag  Tag
	Body CommandBody
}

// CommandBody is a command's verb and arguments, one type per IMAP
// verb this package knows how to parse and encode.
type CommandBody interface {
	isCommandBody()
	// Name returns the command's wire name, e.g. CommandSelect.
	Name() string
}

// CapabilityCommand is the CAPABILITY command; it carries no
// arguments.
type CapabilityCommand struct{}

// NoopCommand is the NOOP command; it carries no arguments.
type NoopCommand struct{}

// LogoutCommand is the LOGOUT command; it carries no arguments.
type LogoutCommand struct{}

// StartTLSCommand is the STARTTLS command; it carries no arguments.
type StartTLSCommand struct{}

// AuthenticateCommand is the AUTHENTICATE command.
type AuthenticateCommand struct {
	Mechanism       string
	InitialResponse []byte // nil if not sent (SASL-IR)
}

// LoginCommand is the LOGIN command.
type LoginCommand struct {
	Username AString
	Password AString
}

// EnableCommand is the ENABLE command (RFC 5161).
type EnableCommand struct {
	Capabilities []Cap
}

// SelectCommand is the SELECT or EXAMINE command, distinguished by
// ReadOnly in Options.
type SelectCommand struct {
	Mailbox Mailbox
	Options SelectOptions
}

// CreateCommand is the CREATE command.
type CreateCommand struct {
	Mailbox Mailbox
	Options CreateOptions
}

// DeleteCommand is the DELETE command.
type DeleteCommand struct{ Mailbox Mailbox }

// RenameCommand is the RENAME command.
type RenameCommand struct {
	From Mailbox
	To   Mailbox
}

// SubscribeCommand is the SUBSCRIBE command.
type SubscribeCommand struct{ Mailbox Mailbox }

// UnsubscribeCommand is the UNSUBSCRIBE command.
type UnsubscribeCommand struct{ Mailbox Mailbox }

// ListCommand is the LIST or LSUB command, distinguished by Lsub.
type ListCommand struct {
	Lsub      bool
	Reference Mailbox
	Patterns  []string
	Options   ListOptions
}

// NamespaceCommand is the NAMESPACE command; it carries no arguments.
type NamespaceCommand struct{}

// StatusCommand is the STATUS command.
type StatusCommand struct {
	Mailbox Mailbox
	Items   StatusOptions
}

// AppendCommand is the APPEND command.
type AppendCommand struct {
	Mailbox Mailbox
	Options AppendOptions
	Message Literal
}

// IdleCommand is the IDLE command; it carries no arguments, but the
// encoder must pause for continuation and the DONE terminator is sent
// as a bare line rather than another command.
type IdleCommand struct{}

// CloseCommand is the CLOSE command; it carries no arguments.
type CloseCommand struct{}

// UnselectCommand is the UNSELECT command (RFC 3691); it carries no
// arguments.
type UnselectCommand struct{}

// ExpungeCommand is the EXPUNGE command. UID is non-nil for the
// UID EXPUNGE form (RFC 4315).
type ExpungeCommand struct{ UID *SequenceSet }

// SearchCommand is the SEARCH command.
type SearchCommand struct {
	UID     bool
	Charset *Charset
	Keys    SearchKey
	Options SearchOptions
}

// FetchCommand is the FETCH command.
type FetchCommand struct {
	UID      bool
	Sequence SequenceSet
	Options  FetchOptions
}

// StoreCommand is the STORE command.
type StoreCommand struct {
	UID      bool
	Sequence SequenceSet
	Flags    StoreFlags
	Options  StoreOptions
}

// CopyCommand is the COPY command.
type CopyCommand struct {
	UID      bool
	Sequence SequenceSet
	Mailbox  Mailbox
}

// MoveCommand is the MOVE command (RFC 6851).
type MoveCommand struct {
	UID      bool
	Sequence SequenceSet
	Mailbox  Mailbox
}

// SortCommand is the SORT command (RFC 5256).
type SortCommand struct {
	UID     bool
	Options SortOptions
}

// ThreadCommand is the THREAD command (RFC 5256).
type ThreadCommand struct {
	UID       bool
	Algorithm ThreadAlgorithm
	Charset   Charset
	Search    SearchKey
}

// CompressCommand is the COMPRESS command (RFC 4978).
type CompressCommand struct{ Mechanism string }

// GetQuotaCommand is the GETQUOTA command (RFC 9208).
type GetQuotaCommand struct{ Root string }

// GetQuotaRootCommand is the GETQUOTAROOT command (RFC 9208).
type GetQuotaRootCommand struct{ Mailbox Mailbox }

// SetQuotaCommand is the SETQUOTA command (RFC 9208).
type SetQuotaCommand struct {
	Root      string
	Resources []QuotaResourceData
}

// SetACLCommand is the SETACL command (RFC 4314).
type SetACLCommand struct {
	Mailbox    Mailbox
	Identifier string
	Rights     string // carries the leading +/- modifier verbatim, if any
}

// DeleteACLCommand is the DELETEACL command (RFC 4314).
type DeleteACLCommand struct {
	Mailbox    Mailbox
	Identifier string
}

// GetACLCommand is the GETACL command (RFC 4314).
type GetACLCommand struct{ Mailbox Mailbox }

// ListRightsCommand is the LISTRIGHTS command (RFC 4314).
type ListRightsCommand struct {
	Mailbox    Mailbox
	Identifier string
}

// MyRightsCommand is the MYRIGHTS command (RFC 4314).
type MyRightsCommand struct{ Mailbox Mailbox }

// SetMetadataCommand is the SETMETADATA command (RFC 5464).
type SetMetadataCommand struct {
	Mailbox Mailbox
	Entries []MetadataEntry
}

// GetMetadataCommand is the GETMETADATA command (RFC 5464).
type GetMetadataCommand struct {
	Mailbox Mailbox
	Entries []string
	Options MetadataOptions
}

// UnauthenticateCommand is the UNAUTHENTICATE command (RFC 8437); it
// carries no arguments.
type UnauthenticateCommand struct{}

func (CapabilityCommand) isCommandBody()     {}
func (NoopCommand) isCommandBody()           {}
func (LogoutCommand) isCommandBody()         {}
func (StartTLSCommand) isCommandBody()       {}
func (AuthenticateCommand) isCommandBody()   {}
func (LoginCommand) isCommandBody()          {}
func (EnableCommand) isCommandBody()         {}
func (SelectCommand) isCommandBody()         {}
func (CreateCommand) isCommandBody()         {}
func (DeleteCommand) isCommandBody()         {}
func (RenameCommand) isCommandBody()         {}
func (SubscribeCommand) isCommandBody()      {}
func (UnsubscribeCommand) isCommandBody()    {}
func (ListCommand) isCommandBody()           {}
func (NamespaceCommand) isCommandBody()      {}
func (StatusCommand) isCommandBody()         {}
func (AppendCommand) isCommandBody()         {}
func (IdleCommand) isCommandBody()           {}
func (CloseCommand) isCommandBody()          {}
func (UnselectCommand) isCommandBody()       {}
func (ExpungeCommand) isCommandBody()        {}
func (SearchCommand) isCommandBody()         {}
func (FetchCommand) isCommandBody()          {}
func (StoreCommand) isCommandBody()          {}
func (CopyCommand) isCommandBody()           {}
func (MoveCommand) isCommandBody()           {}
func (SortCommand) isCommandBody()           {}
func (ThreadCommand) isCommandBody()         {}
func (CompressCommand) isCommandBody()       {}
func (GetQuotaCommand) isCommandBody()       {}
func (GetQuotaRootCommand) isCommandBody()   {}
func (SetQuotaCommand) isCommandBody()       {}
func (SetACLCommand) isCommandBody()         {}
func (DeleteACLCommand) isCommandBody()      {}
func (GetACLCommand) isCommandBody()         {}
func (ListRightsCommand) isCommandBody()     {}
func (MyRightsCommand) isCommandBody()       {}
func (SetMetadataCommand) isCommandBody()    {}
func (GetMetadataCommand) isCommandBody()    {}
func (UnauthenticateCommand) isCommandBody() {}

func (CapabilityCommand) Name() string     { return CommandCapability }
func (NoopCommand) Name() string           { return CommandNoop }
func (LogoutCommand) Name() string         { return CommandLogout }
func (StartTLSCommand) Name() string       { return CommandStartTLS }
func (AuthenticateCommand) Name() string   { return CommandAuthenticate }
func (LoginCommand) Name() string          { return CommandLogin }
func (EnableCommand) Name() string         { return CommandEnable }
func (SelectCommand) Name() string         { return CommandSelect }
func (CreateCommand) Name() string         { return CommandCreate }
func (DeleteCommand) Name() string         { return CommandDelete }
func (RenameCommand) Name() string         { return CommandRename }
func (SubscribeCommand) Name() string      { return CommandSubscribe }
func (UnsubscribeCommand) Name() string    { return CommandUnsubscribe }
func (c ListCommand) Name() string {
	if c.Lsub {
		return CommandLsub
	}
	return CommandList
}
func (NamespaceCommand) Name() string      { return CommandNamespace }
func (StatusCommand) Name() string         { return CommandStatus }
func (AppendCommand) Name() string         { return CommandAppend }
func (IdleCommand) Name() string           { return CommandIdle }
func (CloseCommand) Name() string          { return CommandClose }
func (UnselectCommand) Name() string       { return CommandUnselect }
func (ExpungeCommand) Name() string        { return CommandExpunge }
func (SearchCommand) Name() string         { return CommandSearch }
func (FetchCommand) Name() string          { return CommandFetch }
func (StoreCommand) Name() string          { return CommandStore }
func (CopyCommand) Name() string           { return CommandCopy }
func (MoveCommand) Name() string           { return CommandMove }
func (SortCommand) Name() string           { return CommandSort }
func (ThreadCommand) Name() string         { return CommandThread }
func (CompressCommand) Name() string       { return CommandCompress }
func (GetQuotaCommand) Name() string       { return CommandGetQuota }
func (GetQuotaRootCommand) Name() string   { return CommandGetQuotaRoot }
func (SetQuotaCommand) Name() string       { return CommandSetQuota }
func (SetACLCommand) Name() string         { return CommandSetACL }
func (DeleteACLCommand) Name() string      { return CommandDeleteACL }
func (GetACLCommand) Name() string         { return CommandGetACL }
func (ListRightsCommand) Name() string     { return CommandListRights }
func (MyRightsCommand) Name() string       { return CommandMyRights }
func (SetMetadataCommand) Name() string    { return CommandSetMetadata }
func (GetMetadataCommand) Name() string    { return CommandGetMetadata }
func (UnauthenticateCommand) Name() string { return CommandUnauthenticate }
