package wire

import (
	"strings"

	"github.com/corvid-mail/imapcodec"
	"github.com/corvid-mail/imapcodec/extgate"
)

// commandGate maps a gateable command verb to the capability that must
// be enabled for it to parse. A verb absent from this map belongs to
// the core grammar and is never gated.
var commandGate = map[string]imap.Cap{
	imap.CommandEnable:       imap.CapEnable,
	imap.CommandUnselect:     imap.CapUnselect,
	imap.CommandIdle:         imap.CapIdle,
	imap.CommandMove:         imap.CapMove,
	imap.CommandCompress:     imap.CapCompressDeflate,
	imap.CommandSetQuota:     imap.CapQuota,
	imap.CommandGetQuota:     imap.CapQuota,
	imap.CommandGetQuotaRoot: imap.CapQuota,
	imap.CommandGetACL:       imap.CapACL,
	imap.CommandMyRights:     imap.CapACL,
	imap.CommandSetACL:       imap.CapACL,
	imap.CommandDeleteACL:    imap.CapACL,
	imap.CommandListRights:   imap.CapACL,
	imap.CommandGetMetadata:  imap.CapMetadata,
	imap.CommandSetMetadata:  imap.CapMetadata,
	imap.CommandSort:         imap.CapSort,
}

// ParseCommand parses one client command line: a tag, a verb, its
// arguments, and the terminating CRLF. fs gates which extension verbs
// and modifiers parse; a nil fs is permissive (every extension parses
// unconditionally).
func ParseCommand(buf []byte, fs *extgate.FeatureSet) (int, imap.Command, error) {
	tag, n, err := Tag(buf)
	if err != nil {
		return 0, imap.Command{}, err
	}
	i := n
	sp, err := SP(buf[i:])
	if err != nil {
		return 0, imap.Command{}, err
	}
	i += sp

	a, n, err := Atom(buf[i:])
	if err != nil {
		return 0, imap.Command{}, err
	}
	i += n
	verb := strings.ToUpper(a.String())

	uid := false
	if verb == "UID" {
		uid = true
		sp, err := SP(buf[i:])
		if err != nil {
			return 0, imap.Command{}, err
		}
		i += sp
		a, n, err := Atom(buf[i:])
		if err != nil {
			return 0, imap.Command{}, err
		}
		i += n
		verb = strings.ToUpper(a.String())
	}

	body, n, err := parseCommandArgs(verb, uid, buf[i:], fs)
	if err != nil {
		return 0, imap.Command{}, err
	}
	i += n

	cn, err := CRLF(buf[i:])
	if err != nil {
		return 0, imap.Command{}, err
	}
	i += cn

	return i, imap.Command{Tag: tag, Body: body}, nil
}

func parseMailboxArg(buf []byte) (imap.Mailbox, int, error) {
	as, n, err := AString(buf)
	if err != nil {
		return imap.Mailbox{}, 0, err
	}
	m, err := imap.MailboxFromWireAString(as)
	if err != nil {
		return imap.Mailbox{}, 0, &imap.ParseFailure{Production: "mailbox", Reason: err.Error()}
	}
	return m, n, nil
}

// parseCommandArgs dispatches argument parsing by verb. verb has
// already had any leading "UID " stripped; uid records whether it was
// present.
func parseCommandArgs(verb string, uid bool, buf []byte, fs *extgate.FeatureSet) (imap.CommandBody, int, error) {
	if cap, gated := commandGate[verb]; gated && !fs.Enabled(cap) {
		return nil, 0, &imap.ParseFailure{Production: "command", Reason: "command " + verb + " requires capability " + string(cap) + " which is not enabled"}
	}

	switch verb {
	case imap.CommandCapability:
		return imap.CapabilityCommand{}, 0, nil
	case imap.CommandNoop:
		return imap.NoopCommand{}, 0, nil
	case imap.CommandLogout:
		return imap.LogoutCommand{}, 0, nil
	case imap.CommandStartTLS:
		return imap.StartTLSCommand{}, 0, nil
	case imap.CommandUnselect:
		return imap.UnselectCommand{}, 0, nil
	case imap.CommandClose:
		return imap.CloseCommand{}, 0, nil
	case imap.CommandIdle:
		return imap.IdleCommand{}, 0, nil
	case imap.CommandNamespace:
		return imap.NamespaceCommand{}, 0, nil
	case imap.CommandUnauthenticate:
		return imap.UnauthenticateCommand{}, 0, nil

	case imap.CommandLogin:
		i, err := sp1(buf, 0)
		if err != nil {
			return nil, 0, err
		}
		user, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		pass, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.LoginCommand{Username: user, Password: pass}, i, nil

	case imap.CommandAuthenticate:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mech, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		var initial []byte
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			resp, n, err := AString(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			initial = []byte(resp.Text())
		}
		return imap.AuthenticateCommand{Mechanism: mech.String(), InitialResponse: initial}, i, nil

	case imap.CommandEnable:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		caps, n, err := parseCapList(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.EnableCommand{Capabilities: caps}, i, nil

	case imap.CommandSelect, imap.CommandExamine:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		opts := imap.SelectOptions{ReadOnly: verb == imap.CommandExamine}
		return imap.SelectCommand{Mailbox: mbox, Options: opts}, i, nil

	case imap.CommandCreate:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.CreateCommand{Mailbox: mbox}, i, nil

	case imap.CommandDelete:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DeleteCommand{Mailbox: mbox}, i, nil

	case imap.CommandRename:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		from, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		to, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.RenameCommand{From: from, To: to}, i, nil

	case imap.CommandSubscribe:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SubscribeCommand{Mailbox: mbox}, i, nil

	case imap.CommandUnsubscribe:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.UnsubscribeCommand{Mailbox: mbox}, i, nil

	case imap.CommandList, imap.CommandLsub:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		ref, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		pattern, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.ListCommand{Lsub: verb == imap.CommandLsub, Reference: ref, Patterns: []string{pattern.Text()}}, i, nil

	case imap.CommandStatus:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		items, n, err := parseStatusOptions(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.StatusCommand{Mailbox: mbox, Items: items}, i, nil

	case imap.CommandAppend:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n

		var opts imap.AppendOptions
		if i < len(buf) && buf[i] == ' ' && i+1 < len(buf) && buf[i+1] == '(' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			flags, n, err := parseFlagList(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			opts.Flags = flags
		}
		if i < len(buf) && buf[i] == ' ' && i+1 < len(buf) && buf[i+1] == '"' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			q, n, err := Quoted(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			dt, err := imap.ParseDateTime(q.String())
			if err != nil {
				return nil, 0, &imap.ParseFailure{Production: "append-date", Reason: err.Error()}
			}
			opts.InternalDate = dt.Time()
		}

		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		lit, n, err := Literal(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.AppendCommand{Mailbox: mbox, Options: opts, Message: lit}, i, nil

	case imap.CommandExpunge:
		if uid {
			sp, err := SP(buf)
			if err != nil {
				return nil, 0, err
			}
			i := sp
			seq, n, err := SequenceSet(buf[i:], imap.NumKindUID)
			if err != nil {
				return nil, 0, err
			}
			i += n
			return imap.ExpungeCommand{UID: &seq}, i, nil
		}
		return imap.ExpungeCommand{}, 0, nil

	case imap.CommandSearch:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		var charset *imap.Charset
		if i+7 < len(buf) && strings.EqualFold(string(buf[i:i+8]), "CHARSET ") {
			i += 8
			cs, n, err := Charset(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			charset = &cs
		}
		key, n, err := ParseSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchCommand{UID: uid, Charset: charset, Keys: key}, i, nil

	case imap.CommandFetch:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		kind := imap.NumKindSeq
		if uid {
			kind = imap.NumKindUID
		}
		seq, n, err := SequenceSet(buf[i:], kind)
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		opts, n, err := parseFetchOptions(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.FetchCommand{UID: uid, Sequence: seq, Options: opts}, i, nil

	case imap.CommandStore:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		kind := imap.NumKindSeq
		if uid {
			kind = imap.NumKindUID
		}
		seq, n, err := SequenceSet(buf[i:], kind)
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		opts, n, err := parseStoreUnchangedSince(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		if n > 0 && !fs.Enabled(imap.CapCondStore) {
			return nil, 0, &imap.ParseFailure{Production: "command", Reason: "STORE UNCHANGEDSINCE requires capability CONDSTORE which is not enabled"}
		}
		i += n
		flags, n, err := parseStoreFlags(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.StoreCommand{UID: uid, Sequence: seq, Flags: flags, Options: opts}, i, nil

	case imap.CommandCopy, imap.CommandMove:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		kind := imap.NumKindSeq
		if uid {
			kind = imap.NumKindUID
		}
		seq, n, err := SequenceSet(buf[i:], kind)
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		if verb == imap.CommandMove {
			return imap.MoveCommand{UID: uid, Sequence: seq, Mailbox: mbox}, i, nil
		}
		return imap.CopyCommand{UID: uid, Sequence: seq, Mailbox: mbox}, i, nil

	case imap.CommandCompress:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mech, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.CompressCommand{Mechanism: mech.String()}, i, nil

	case imap.CommandSetQuota:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		root, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		resources, n, err := parseQuotaResourceLimits(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SetQuotaCommand{Root: root.Text(), Resources: resources}, i, nil

	case imap.CommandGetQuota:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		root, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.GetQuotaCommand{Root: root.Text()}, i, nil

	case imap.CommandGetQuotaRoot:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.GetQuotaRootCommand{Mailbox: mbox}, i, nil

	case imap.CommandGetACL:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.GetACLCommand{Mailbox: mbox}, i, nil

	case imap.CommandMyRights:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.MyRightsCommand{Mailbox: mbox}, i, nil

	case imap.CommandSetACL:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		ident, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		rights, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SetACLCommand{Mailbox: mbox, Identifier: ident.Text(), Rights: rights.Text()}, i, nil

	case imap.CommandDeleteACL:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		ident, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DeleteACLCommand{Mailbox: mbox, Identifier: ident.Text()}, i, nil

	case imap.CommandListRights:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		ident, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.ListRightsCommand{Mailbox: mbox, Identifier: ident.Text()}, i, nil

	case imap.CommandGetMetadata:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		entries, n, err := parseMetadataEntryNames(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.GetMetadataCommand{Mailbox: mbox, Entries: entries}, i, nil

	case imap.CommandSetMetadata:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		mbox, n, err := parseMailboxArg(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		entries, n, err := parseMetadataEntries(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SetMetadataCommand{Mailbox: mbox, Entries: entries}, i, nil

	case imap.CommandSort:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		opts, n, err := parseSortOptions(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SortCommand{UID: uid, Options: opts}, i, nil

	case imap.CommandThread:
		sp, err := SP(buf)
		if err != nil {
			return nil, 0, err
		}
		i := sp
		alg, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		charset, n, err := Charset(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		key, n, err := ParseSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		algorithm := imap.ThreadAlgorithm(strings.ToUpper(alg.String()))
		var algCap imap.Cap
		switch algorithm {
		case imap.ThreadAlgorithmOrderedSubject:
			algCap = imap.CapThreadOrderedSubject
		case imap.ThreadAlgorithmReferences:
			algCap = imap.CapThreadReferences
		}
		if algCap != "" && !fs.Enabled(algCap) {
			return nil, 0, &imap.ParseFailure{Production: "command", Reason: "THREAD " + string(algorithm) + " requires capability " + string(algCap) + " which is not enabled"}
		}
		return imap.ThreadCommand{UID: uid, Algorithm: algorithm, Charset: charset, Search: key}, i, nil
	}

	return nil, 0, &imap.ParseFailure{Production: "command", Reason: "unknown command " + verb}
}

func sp1(buf []byte, at int) (int, error) {
	n, err := SP(buf[at:])
	if err != nil {
		return 0, err
	}
	return at + n, nil
}

func parseStatusOptions(buf []byte) (imap.StatusOptions, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.StatusOptions{}, 0, err
	}
	var opts imap.StatusOptions
	for {
		a, n, err := Atom(buf[i:])
		if err != nil {
			return imap.StatusOptions{}, 0, err
		}
		i += n
		switch strings.ToUpper(a.String()) {
		case "MESSAGES":
			opts.NumMessages = true
		case "UIDNEXT":
			opts.UIDNext = true
		case "UIDVALIDITY":
			opts.UIDValidity = true
		case "UNSEEN":
			opts.NumUnseen = true
		case "RECENT":
			opts.NumRecent = true
		case "SIZE":
			opts.Size = true
		case "APPENDLIMIT":
			opts.AppendLimit = true
		case "HIGHESTMODSEQ":
			opts.HighestModSeq = true
		}
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.StatusOptions{}, 0, err
			}
			i += sp
			continue
		}
		break
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.StatusOptions{}, 0, err
	}
	i += cn
	return opts, i, nil
}

func parseFetchOptions(buf []byte) (imap.FetchOptions, int, error) {
	if len(buf) > 0 && buf[0] != '(' {
		a, n, err := Atom(buf)
		if err != nil {
			return imap.FetchOptions{}, 0, err
		}
		switch strings.ToUpper(a.String()) {
		case "ALL":
			return imap.FetchOptions{Attributes: []imap.FetchAttribute{
				imap.FetchAttrFlags{}, imap.FetchAttrEnvelope{}, imap.FetchAttrRFC822Size{}, imap.FetchAttrInternalDate{},
			}}, n, nil
		case "FAST":
			return imap.FetchOptions{Attributes: []imap.FetchAttribute{
				imap.FetchAttrFlags{}, imap.FetchAttrRFC822Size{}, imap.FetchAttrInternalDate{},
			}}, n, nil
		case "FULL":
			return imap.FetchOptions{Attributes: []imap.FetchAttribute{
				imap.FetchAttrFlags{}, imap.FetchAttrEnvelope{}, imap.FetchAttrRFC822Size{}, imap.FetchAttrInternalDate{},
				imap.FetchAttrBodyStructure{},
			}}, n, nil
		}
		attr, n, err := ParseFetchAttribute(buf)
		if err != nil {
			return imap.FetchOptions{}, 0, err
		}
		return imap.FetchOptions{Attributes: []imap.FetchAttribute{attr}}, n, nil
	}

	i, err := Byte(buf, '(')
	if err != nil {
		return imap.FetchOptions{}, 0, err
	}
	var attrs []imap.FetchAttribute
	for {
		a, n, err := ParseFetchAttribute(buf[i:])
		if err != nil {
			return imap.FetchOptions{}, 0, err
		}
		attrs = append(attrs, a)
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.FetchOptions{}, 0, err
			}
			i += sp
			continue
		}
		break
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.FetchOptions{}, 0, err
	}
	i += cn
	return imap.FetchOptions{Attributes: attrs}, i, nil
}

func parseQuotaResourceLimits(buf []byte) ([]imap.QuotaResourceData, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var resources []imap.QuotaResourceData
	for i < len(buf) && buf[i] != ')' {
		a, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		limit, n, err := Number64(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		resources = append(resources, imap.QuotaResourceData{Name: imap.QuotaResource(strings.ToUpper(a.String())), Limit: int64(limit)})
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return resources, i, nil
}

func parseStoreUnchangedSince(buf []byte) (imap.StoreOptions, int, error) {
	var opts imap.StoreOptions
	if len(buf) < 1 || buf[0] != '(' {
		return opts, 0, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return opts, 0, err
	}
	if i+14 > len(buf) || !strings.EqualFold(string(buf[i:i+14]), "UNCHANGEDSINCE") {
		return imap.StoreOptions{}, 0, nil
	}
	i += 14
	sp, err := SP(buf[i:])
	if err != nil {
		return opts, 0, err
	}
	i += sp
	val, n, err := Number64(buf[i:])
	if err != nil {
		return opts, 0, err
	}
	i += n
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return opts, 0, err
	}
	i += cn
	sp, err = SP(buf[i:])
	if err != nil {
		return opts, 0, err
	}
	i += sp
	opts.UnchangedSince = val
	return opts, i, nil
}

func parseStoreFlags(buf []byte) (imap.StoreFlags, int, error) {
	action := imap.StoreFlagsSet
	i := 0
	if buf[0] == '+' {
		action = imap.StoreFlagsAdd
		i++
	} else if buf[0] == '-' {
		action = imap.StoreFlagsDel
		i++
	}
	a, n, err := Atom(buf[i:])
	if err != nil {
		return imap.StoreFlags{}, 0, err
	}
	i += n
	word := strings.ToUpper(a.String())
	silent := false
	if strings.HasSuffix(word, ".SILENT") {
		silent = true
	}

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.StoreFlags{}, 0, err
	}
	i += sp

	var flags []imap.Flag
	if i < len(buf) && buf[i] == '(' {
		fl, n, err := parseFlagList(buf[i:])
		if err != nil {
			return imap.StoreFlags{}, 0, err
		}
		flags = fl
		i += n
	} else {
		for {
			f, n, err := Flag(buf[i:])
			if err != nil {
				return imap.StoreFlags{}, 0, err
			}
			flags = append(flags, f)
			i += n
			if i < len(buf) && buf[i] == ' ' && i+1 < len(buf) && (buf[i+1] == '\\' || isAtomChar(buf[i+1])) {
				sp, err := SP(buf[i:])
				if err != nil {
					return imap.StoreFlags{}, 0, err
				}
				i += sp
				continue
			}
			break
		}
	}

	return imap.StoreFlags{Action: action, Silent: silent, Flags: flags}, i, nil
}

func parseMetadataEntryNames(buf []byte) ([]string, int, error) {
	if len(buf) > 0 && buf[0] != '(' {
		a, n, err := AString(buf)
		if err != nil {
			return nil, 0, err
		}
		return []string{a.Text()}, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var entries []string
	for i < len(buf) && buf[i] != ')' {
		a, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, a.Text())
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return entries, i, nil
}

func parseMetadataEntries(buf []byte) ([]imap.MetadataEntry, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var entries []imap.MetadataEntry
	for i < len(buf) && buf[i] != ')' {
		name, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		ns, n, err := NString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		var val *string
		if !ns.IsNil() {
			v := ns.Text()
			val = &v
		}
		entries = append(entries, imap.MetadataEntry{Name: name.Text(), Value: val})
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return entries, i, nil
}

func parseSortOptions(buf []byte) (imap.SortOptions, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.SortOptions{}, 0, err
	}
	var criteria []imap.SortCriterion
	for i < len(buf) && buf[i] != ')' {
		reverse := false
		if i+7 <= len(buf) && strings.EqualFold(string(buf[i:i+7]), "REVERSE") {
			reverse = true
			i += 7
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.SortOptions{}, 0, err
			}
			i += sp
		}
		a, n, err := Atom(buf[i:])
		if err != nil {
			return imap.SortOptions{}, 0, err
		}
		i += n
		criteria = append(criteria, imap.SortCriterion{Key: imap.SortKey(strings.ToUpper(a.String())), Reverse: reverse})
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.SortOptions{}, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.SortOptions{}, 0, err
	}
	i += cn

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.SortOptions{}, 0, err
	}
	i += sp
	charset, n, err := Charset(buf[i:])
	if err != nil {
		return imap.SortOptions{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.SortOptions{}, 0, err
	}
	i += sp
	key, n, err := ParseSearchKey(buf[i:])
	if err != nil {
		return imap.SortOptions{}, 0, err
	}
	i += n

	return imap.SortOptions{Search: key, SortCriteria: criteria, Charset: charset}, i, nil
}
