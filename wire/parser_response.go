package wire

import (
	"strings"

	"github.com/corvid-mail/imapcodec"
	"github.com/corvid-mail/imapcodec/extgate"
)

// responseGate maps a gateable data-response name to the capability
// that must be enabled for it to parse. A name absent from this map
// belongs to the core grammar and is never gated.
var responseGate = map[string]imap.Cap{
	"ENABLED":    imap.CapEnable,
	"ACL":        imap.CapACL,
	"LISTRIGHTS": imap.CapACL,
	"MYRIGHTS":   imap.CapACL,
	"QUOTA":      imap.CapQuota,
	"QUOTAROOT":  imap.CapQuota,
	"METADATA":   imap.CapMetadata,
	"SORT":       imap.CapSort,
}

// parseNamedData dispatches an untagged data response by its name
// (already consumed and upper-cased by the caller) over the
// remainder of the line, not including the trailing CRLF. fs gates
// which extension data responses parse; a nil fs is permissive.
func parseNamedData(name string, buf []byte, fs *extgate.FeatureSet) (imap.Data, int, error) {
	sp := func(buf []byte) (int, error) { return SP(buf) }

	if cap, gated := responseGate[name]; gated && !fs.Enabled(cap) {
		return nil, 0, &imap.ParseFailure{Production: "response-data", Reason: "data response " + name + " requires capability " + string(cap) + " which is not enabled"}
	}
	if name == "THREAD" && !fs.Enabled(imap.CapThreadOrderedSubject) && !fs.Enabled(imap.CapThreadReferences) {
		return nil, 0, &imap.ParseFailure{Production: "response-data", Reason: "data response THREAD requires a THREAD= capability which is not enabled"}
	}

	switch name {
	case "CAPABILITY":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		caps, cn, err := parseCapList(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataCapability{Capabilities: caps}, n + cn, nil
	case "ENABLED":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		caps, cn, err := parseCapList(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataEnabled{Capabilities: caps}, n + cn, nil
	case "FLAGS":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		flags, fn, err := parseFlagList(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataFlags{Flags: flags}, n + fn, nil
	case "LIST", "LSUB":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		list, ln, err := parseListData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		if name == "LSUB" {
			return imap.DataLsub{List: list}, n + ln, nil
		}
		return imap.DataList{List: list}, n + ln, nil
	case "STATUS":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		status, sn, err := parseStatusData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataStatus{Status: status}, n + sn, nil
	case "SEARCH":
		return parseSearchData(buf)
	case "NAMESPACE":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		ns, nn, err := parseNamespaceData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataNamespace{Namespace: ns}, n + nn, nil
	case "ID":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		id, idn, err := parseIDData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataID{ID: id}, n + idn, nil
	case "ACL":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		acl, an, err := parseACLData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataACL{ACL: acl}, n + an, nil
	case "LISTRIGHTS":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		lr, ln, err := parseListRightsData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataListRights{ListRights: lr}, n + ln, nil
	case "MYRIGHTS":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		mr, mn, err := parseMyRightsData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataMyRights{MyRights: mr}, n + mn, nil
	case "QUOTA":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		q, qn, err := parseQuotaData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataQuota{Quota: q}, n + qn, nil
	case "QUOTAROOT":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		qr, qn, err := parseQuotaRootData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataQuotaRoot{QuotaRoot: qr}, n + qn, nil
	case "METADATA":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		md, mn, err := parseMetadataData(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataMetadata{Metadata: md}, n + mn, nil
	case "SORT":
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		nums, sn, err := parseNumberList(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataSort{Sort: imap.SortData{AllNums: nums}}, n + sn, nil
	case "THREAD":
		if len(buf) == 0 || buf[0] != ' ' {
			return imap.DataThread{Thread: imap.ThreadData{}}, 0, nil
		}
		n, err := sp(buf)
		if err != nil {
			return nil, 0, err
		}
		threads, tn, err := parseThreadList(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return imap.DataThread{Thread: imap.ThreadData{Threads: threads}}, n + tn, nil
	}
	return nil, 0, &imap.ParseFailure{Production: "response-data", Reason: "unknown data response " + name}
}

func parseCapList(buf []byte) ([]imap.Cap, int, error) {
	var caps []imap.Cap
	i := 0
	for {
		a, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		caps = append(caps, imap.Cap(a.String()))
		i += n
		if i < len(buf) && buf[i] == ' ' && i+1 < len(buf) && buf[i+1] != '\r' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			continue
		}
		break
	}
	return caps, i, nil
}

func parseNumberList(buf []byte) ([]uint32, int, error) {
	var nums []uint32
	i := 0
	for i < len(buf) && isDigit(buf[i]) {
		num, n, err := Number(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		nums = append(nums, num)
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
		}
	}
	return nums, i, nil
}

func parseListData(buf []byte) (imap.ListData, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.ListData{}, 0, err
	}
	var attrs []imap.MailboxAttr
	for i < len(buf) && buf[i] != ')' {
		f, n, err := Flag(buf[i:])
		if err != nil {
			return imap.ListData{}, 0, err
		}
		attrs = append(attrs, imap.MailboxAttr(f))
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.ListData{}, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.ListData{}, 0, err
	}
	i += cn

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.ListData{}, 0, err
	}
	i += sp

	var delim rune
	if len(buf) > i && buf[i] == '"' {
		q, n, err := Quoted(buf[i:])
		if err != nil {
			return imap.ListData{}, 0, err
		}
		i += n
		if q.String() != "" {
			delim = []rune(q.String())[0]
		}
	} else {
		if n, ok := matchNil(buf[i:]); ok {
			i += n
		}
	}

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.ListData{}, 0, err
	}
	i += sp

	as, n, err := AString(buf[i:])
	if err != nil {
		return imap.ListData{}, 0, err
	}
	i += n

	return imap.ListData{Attrs: attrs, Delim: delim, Mailbox: as.Text()}, i, nil
}

func parseStatusData(buf []byte) (imap.StatusData, int, error) {
	mbox, n, err := AString(buf)
	if err != nil {
		return imap.StatusData{}, 0, err
	}
	i := n

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.StatusData{}, 0, err
	}
	i += sp

	pn, err := Byte(buf[i:], '(')
	if err != nil {
		return imap.StatusData{}, 0, err
	}
	i += pn

	data := imap.StatusData{Mailbox: mbox.Text()}
	for i < len(buf) && buf[i] != ')' {
		a, n, err := Atom(buf[i:])
		if err != nil {
			return imap.StatusData{}, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.StatusData{}, 0, err
		}
		i += sp
		num, n, err := Number(buf[i:])
		if err != nil {
			return imap.StatusData{}, 0, err
		}
		i += n
		v := num
		switch strings.ToUpper(a.String()) {
		case "MESSAGES":
			data.NumMessages = &v
		case "UIDNEXT":
			data.UIDNext = &v
		case "UIDVALIDITY":
			data.UIDValidity = &v
		case "UNSEEN":
			data.NumUnseen = &v
		case "RECENT":
			data.NumRecent = &v
		case "HIGHESTMODSEQ":
			hv := uint64(v)
			data.HighestModSeq = &hv
		}
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.StatusData{}, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.StatusData{}, 0, err
	}
	i += cn
	return data, i, nil
}

// parseSearchData parses both the SEARCH and ESEARCH forms (numbers
// or, under ESEARCH, a tagged result list).
func parseSearchData(buf []byte) (imap.Data, int, error) {
	if len(buf) == 0 || buf[0] != ' ' {
		return imap.DataSearch{Search: imap.SearchData{}}, 0, nil
	}
	n, err := SP(buf)
	if err != nil {
		return nil, 0, err
	}
	nums, sn, err := parseNumberList(buf[n:])
	if err != nil {
		return nil, 0, err
	}
	return imap.DataSearch{Search: imap.SearchData{AllSeqNums: toSeqNums(nums)}}, n + sn, nil
}

func toSeqNums(nums []uint32) []imap.SeqNum {
	out := make([]imap.SeqNum, len(nums))
	for i, n := range nums {
		out[i] = imap.SeqNum(n)
	}
	return out
}

func parseNamespaceData(buf []byte) (imap.NamespaceData, int, error) {
	personal, n, err := parseNamespaceDescList(buf)
	if err != nil {
		return imap.NamespaceData{}, 0, err
	}
	i := n

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.NamespaceData{}, 0, err
	}
	i += sp
	other, n, err := parseNamespaceDescList(buf[i:])
	if err != nil {
		return imap.NamespaceData{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.NamespaceData{}, 0, err
	}
	i += sp
	shared, n, err := parseNamespaceDescList(buf[i:])
	if err != nil {
		return imap.NamespaceData{}, 0, err
	}
	i += n

	return imap.NamespaceData{Personal: personal, Other: other, Shared: shared}, i, nil
}

func parseNamespaceDescList(buf []byte) ([]imap.NamespaceDescriptor, int, error) {
	if n, ok := matchNil(buf); ok {
		return nil, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var descs []imap.NamespaceDescriptor
	for i < len(buf) && buf[i] != ')' {
		pn, err := Byte(buf[i:], '(')
		if err != nil {
			return nil, 0, err
		}
		i += pn
		prefix, n, err := IString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		var delim rune
		ns, n, err := NString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		if !ns.IsNil() && ns.Text() != "" {
			delim = []rune(ns.Text())[0]
		}
		cn, err := Byte(buf[i:], ')')
		if err != nil {
			return nil, 0, err
		}
		i += cn
		descs = append(descs, imap.NamespaceDescriptor{Prefix: prefix.Text(), Delim: delim})
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return descs, i, nil
}

func parseIDData(buf []byte) (imap.IDData, int, error) {
	if n, ok := matchNil(buf); ok {
		return nil, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	data := imap.IDData{}
	for i < len(buf) && buf[i] != ')' {
		key, n, err := IString(buf[i:])
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
		if ns.IsNil() {
			data[strings.ToLower(key.Text())] = nil
		} else {
			v := ns.Text()
			data[strings.ToLower(key.Text())] = &v
		}
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
	return data, i, nil
}

func parseACLData(buf []byte) (imap.ACLData, int, error) {
	mbox, n, err := AString(buf)
	if err != nil {
		return imap.ACLData{}, 0, err
	}
	i := n
	rights := map[string]imap.ACLRights{}
	for i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.ACLData{}, 0, err
		}
		i += sp
		ident, n, err := AString(buf[i:])
		if err != nil {
			return imap.ACLData{}, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return imap.ACLData{}, 0, err
		}
		i += sp
		r, n, err := AString(buf[i:])
		if err != nil {
			return imap.ACLData{}, 0, err
		}
		i += n
		rights[ident.Text()] = imap.ACLRights(r.Text())
	}
	return imap.ACLData{Mailbox: mbox.Text(), Rights: rights}, i, nil
}

func parseListRightsData(buf []byte) (imap.ACLListRightsData, int, error) {
	mbox, n, err := AString(buf)
	if err != nil {
		return imap.ACLListRightsData{}, 0, err
	}
	i := n
	sp, err := SP(buf[i:])
	if err != nil {
		return imap.ACLListRightsData{}, 0, err
	}
	i += sp
	ident, n, err := AString(buf[i:])
	if err != nil {
		return imap.ACLListRightsData{}, 0, err
	}
	i += n
	sp, err = SP(buf[i:])
	if err != nil {
		return imap.ACLListRightsData{}, 0, err
	}
	i += sp
	req, n, err := AString(buf[i:])
	if err != nil {
		return imap.ACLListRightsData{}, 0, err
	}
	i += n
	var opt []imap.ACLRights
	for i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.ACLListRightsData{}, 0, err
		}
		i += sp
		o, n, err := AString(buf[i:])
		if err != nil {
			return imap.ACLListRightsData{}, 0, err
		}
		i += n
		opt = append(opt, imap.ACLRights(o.Text()))
	}
	return imap.ACLListRightsData{Mailbox: mbox.Text(), Identifier: ident.Text(), Required: imap.ACLRights(req.Text()), Optional: opt}, i, nil
}

func parseMyRightsData(buf []byte) (imap.ACLMyRightsData, int, error) {
	mbox, n, err := AString(buf)
	if err != nil {
		return imap.ACLMyRightsData{}, 0, err
	}
	i := n
	sp, err := SP(buf[i:])
	if err != nil {
		return imap.ACLMyRightsData{}, 0, err
	}
	i += sp
	r, n, err := AString(buf[i:])
	if err != nil {
		return imap.ACLMyRightsData{}, 0, err
	}
	i += n
	return imap.ACLMyRightsData{Mailbox: mbox.Text(), Rights: imap.ACLRights(r.Text())}, i, nil
}

func parseQuotaData(buf []byte) (imap.QuotaData, int, error) {
	root, n, err := AString(buf)
	if err != nil {
		return imap.QuotaData{}, 0, err
	}
	i := n
	sp, err := SP(buf[i:])
	if err != nil {
		return imap.QuotaData{}, 0, err
	}
	i += sp
	pn, err := Byte(buf[i:], '(')
	if err != nil {
		return imap.QuotaData{}, 0, err
	}
	i += pn
	var resources []imap.QuotaResourceData
	for i < len(buf) && buf[i] != ')' {
		name, n, err := Atom(buf[i:])
		if err != nil {
			return imap.QuotaData{}, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.QuotaData{}, 0, err
		}
		i += sp
		usage, n, err := Number64(buf[i:])
		if err != nil {
			return imap.QuotaData{}, 0, err
		}
		i += n
		sp, err = SP(buf[i:])
		if err != nil {
			return imap.QuotaData{}, 0, err
		}
		i += sp
		limit, n, err := Number64(buf[i:])
		if err != nil {
			return imap.QuotaData{}, 0, err
		}
		i += n
		resources = append(resources, imap.QuotaResourceData{Name: imap.QuotaResource(name.String()), Usage: int64(usage), Limit: int64(limit)})
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.QuotaData{}, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.QuotaData{}, 0, err
	}
	i += cn
	return imap.QuotaData{Root: root.Text(), Resources: resources}, i, nil
}

func parseQuotaRootData(buf []byte) (imap.QuotaRootData, int, error) {
	mbox, n, err := AString(buf)
	if err != nil {
		return imap.QuotaRootData{}, 0, err
	}
	i := n
	var roots []string
	for i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.QuotaRootData{}, 0, err
		}
		i += sp
		r, n, err := AString(buf[i:])
		if err != nil {
			return imap.QuotaRootData{}, 0, err
		}
		i += n
		roots = append(roots, r.Text())
	}
	return imap.QuotaRootData{Mailbox: mbox.Text(), Roots: roots}, i, nil
}

func parseMetadataData(buf []byte) (imap.MetadataData, int, error) {
	mbox, n, err := AString(buf)
	if err != nil {
		return imap.MetadataData{}, 0, err
	}
	i := n
	sp, err := SP(buf[i:])
	if err != nil {
		return imap.MetadataData{}, 0, err
	}
	i += sp
	pn, err := Byte(buf[i:], '(')
	if err != nil {
		return imap.MetadataData{}, 0, err
	}
	i += pn
	entries := map[string]*string{}
	for i < len(buf) && buf[i] != ')' {
		name, n, err := AString(buf[i:])
		if err != nil {
			return imap.MetadataData{}, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.MetadataData{}, 0, err
		}
		i += sp
		ns, n, err := NString(buf[i:])
		if err != nil {
			return imap.MetadataData{}, 0, err
		}
		i += n
		if ns.IsNil() {
			entries[name.Text()] = nil
		} else {
			v := ns.Text()
			entries[name.Text()] = &v
		}
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.MetadataData{}, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.MetadataData{}, 0, err
	}
	i += cn
	return imap.MetadataData{Mailbox: mbox.Text(), Entries: entries}, i, nil
}

func parseThreadList(buf []byte) ([]imap.Thread, int, error) {
	var threads []imap.Thread
	i := 0
	for i < len(buf) && buf[i] == '(' {
		t, n, err := parseThread(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		threads = append(threads, t)
		i += n
	}
	return threads, i, nil
}

func parseThread(buf []byte) (imap.Thread, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.Thread{}, 0, err
	}
	num, n, err := Number(buf[i:])
	if err != nil {
		return imap.Thread{}, 0, err
	}
	i += n
	var children []imap.Thread
	for i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.Thread{}, 0, err
		}
		i += sp
		if i < len(buf) && buf[i] == '(' {
			t, n, err := parseThread(buf[i:])
			if err != nil {
				return imap.Thread{}, 0, err
			}
			children = append(children, t)
			i += n
			continue
		}
		child, n, err := Number(buf[i:])
		if err != nil {
			return imap.Thread{}, 0, err
		}
		children = append(children, imap.Thread{Num: child})
		i += n
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.Thread{}, 0, err
	}
	i += cn
	return imap.Thread{Num: num, Children: children}, i, nil
}
