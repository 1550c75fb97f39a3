package wire

import (
	"testing"

	"github.com/corvid-mail/imapcodec"
	"github.com/corvid-mail/imapcodec/extgate"
)

func TestParseCommandNoArg(t *testing.T) {
	tests := []struct {
		raw  string
		want imap.CommandBody
	}{
		{"A1 NOOP\r\n", imap.NoopCommand{}},
		{"A1 LOGOUT\r\n", imap.LogoutCommand{}},
		{"A1 CAPABILITY\r\n", imap.CapabilityCommand{}},
		{"A1 STARTTLS\r\n", imap.StartTLSCommand{}},
		{"A1 CLOSE\r\n", imap.CloseCommand{}},
		{"A1 UNSELECT\r\n", imap.UnselectCommand{}},
		{"A1 IDLE\r\n", imap.IdleCommand{}},
		{"A1 NAMESPACE\r\n", imap.NamespaceCommand{}},
		{"A1 UNAUTHENTICATE\r\n", imap.UnauthenticateCommand{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, cmd, err := ParseCommand([]byte(tt.raw), nil)
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.raw, err)
			}
			if n != len(tt.raw) {
				t.Errorf("consumed %d, want %d", n, len(tt.raw))
			}
			if cmd.Tag.String() != "A1" {
				t.Errorf("Tag = %q, want A1", cmd.Tag.String())
			}
			if cmd.Body != tt.want {
				t.Errorf("Body = %#v, want %#v", cmd.Body, tt.want)
			}
		})
	}
}

func TestParseCommandLogin(t *testing.T) {
	raw := "A1 LOGIN smith sesame\r\n"
	n, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	login, ok := cmd.Body.(imap.LoginCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if login.Username.Text() != "smith" || login.Password.Text() != "sesame" {
		t.Errorf("got Username=%q Password=%q", login.Username.Text(), login.Password.Text())
	}
}

func TestParseCommandAuthenticate(t *testing.T) {
	raw := "A1 AUTHENTICATE PLAIN\r\n"
	n, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	auth, ok := cmd.Body.(imap.AuthenticateCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if auth.Mechanism != "PLAIN" || auth.InitialResponse != nil {
		t.Errorf("got %#v", auth)
	}

	raw2 := "A2 AUTHENTICATE PLAIN AGJvYgBzZXNhbWU=\r\n"
	_, cmd2, err := ParseCommand([]byte(raw2), nil)
	if err != nil {
		t.Fatal(err)
	}
	auth2, ok := cmd2.Body.(imap.AuthenticateCommand)
	if !ok || string(auth2.InitialResponse) != "AGJvYgBzZXNhbWU=" {
		t.Fatalf("got %#v", cmd2.Body)
	}
}

func TestParseCommandEnable(t *testing.T) {
	raw := "A1 ENABLE CONDSTORE QRESYNC\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	enable, ok := cmd.Body.(imap.EnableCommand)
	if !ok || len(enable.Capabilities) != 2 {
		t.Fatalf("got %#v", cmd.Body)
	}
	if enable.Capabilities[0] != imap.CapCondStore || enable.Capabilities[1] != imap.CapQResync {
		t.Errorf("got %#v", enable.Capabilities)
	}
}

func TestParseCommandSelectExamine(t *testing.T) {
	tests := []struct {
		raw      string
		readOnly bool
	}{
		{"A1 SELECT INBOX\r\n", false},
		{"A1 EXAMINE INBOX\r\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, cmd, err := ParseCommand([]byte(tt.raw), nil)
			if err != nil {
				t.Fatal(err)
			}
			sel, ok := cmd.Body.(imap.SelectCommand)
			if !ok {
				t.Fatalf("got %#v", cmd.Body)
			}
			if !sel.Mailbox.IsInbox() {
				t.Errorf("Mailbox = %q, want INBOX", sel.Mailbox.Name())
			}
			if sel.Options.ReadOnly != tt.readOnly {
				t.Errorf("ReadOnly = %v, want %v", sel.Options.ReadOnly, tt.readOnly)
			}
		})
	}
}

func TestParseCommandCreateDeleteSubscribeUnsubscribe(t *testing.T) {
	tests := []struct {
		raw  string
		name string
	}{
		{"A1 CREATE Archive\r\n", "Archive"},
		{"A1 DELETE Archive\r\n", "Archive"},
		{"A1 SUBSCRIBE Archive\r\n", "Archive"},
		{"A1 UNSUBSCRIBE Archive\r\n", "Archive"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, cmd, err := ParseCommand([]byte(tt.raw), nil)
			if err != nil {
				t.Fatal(err)
			}
			var mbox imap.Mailbox
			switch b := cmd.Body.(type) {
			case imap.CreateCommand:
				mbox = b.Mailbox
			case imap.DeleteCommand:
				mbox = b.Mailbox
			case imap.SubscribeCommand:
				mbox = b.Mailbox
			case imap.UnsubscribeCommand:
				mbox = b.Mailbox
			default:
				t.Fatalf("got %#v", cmd.Body)
			}
			if mbox.Name() != tt.name {
				t.Errorf("Mailbox.Name() = %q, want %q", mbox.Name(), tt.name)
			}
		})
	}
}

func TestParseCommandRename(t *testing.T) {
	raw := "A1 RENAME Drafts Archive\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	ren, ok := cmd.Body.(imap.RenameCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if ren.From.Name() != "Drafts" || ren.To.Name() != "Archive" {
		t.Errorf("got From=%q To=%q", ren.From.Name(), ren.To.Name())
	}
}

func TestParseCommandListLsub(t *testing.T) {
	tests := []struct {
		raw  string
		lsub bool
	}{
		{`A1 LIST "" "*"` + "\r\n", false},
		{`A1 LSUB "" "*"` + "\r\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, cmd, err := ParseCommand([]byte(tt.raw), nil)
			if err != nil {
				t.Fatal(err)
			}
			list, ok := cmd.Body.(imap.ListCommand)
			if !ok {
				t.Fatalf("got %#v", cmd.Body)
			}
			if list.Lsub != tt.lsub {
				t.Errorf("Lsub = %v, want %v", list.Lsub, tt.lsub)
			}
			if list.Reference.Name() != "" {
				t.Errorf("Reference = %q, want empty", list.Reference.Name())
			}
			if len(list.Patterns) != 1 || list.Patterns[0] != "*" {
				t.Errorf("Patterns = %#v", list.Patterns)
			}
		})
	}
}

func TestParseCommandStatus(t *testing.T) {
	raw := "A1 STATUS INBOX (MESSAGES UNSEEN)\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	st, ok := cmd.Body.(imap.StatusCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if !st.Mailbox.IsInbox() {
		t.Errorf("Mailbox = %q", st.Mailbox.Name())
	}
	if !st.Items.NumMessages || !st.Items.NumUnseen {
		t.Errorf("got %#v", st.Items)
	}
	if st.Items.UIDNext || st.Items.Size {
		t.Errorf("unexpected items set: %#v", st.Items)
	}
}

func TestParseCommandAppend(t *testing.T) {
	raw := "A1 APPEND Archive (\\Seen) {5}\r\nhello"
	n, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	app, ok := cmd.Body.(imap.AppendCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if app.Mailbox.Name() != "Archive" {
		t.Errorf("Mailbox = %q", app.Mailbox.Name())
	}
	if len(app.Options.Flags) != 1 || app.Options.Flags[0] != imap.FlagSeen {
		t.Errorf("Flags = %#v", app.Options.Flags)
	}
	if string(app.Message) != "hello" {
		t.Errorf("Message = %q, want hello", app.Message)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
}

func TestParseCommandExpungeAndUIDExpunge(t *testing.T) {
	raw := "A1 EXPUNGE\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	exp, ok := cmd.Body.(imap.ExpungeCommand)
	if !ok || exp.UID != nil {
		t.Fatalf("got %#v", cmd.Body)
	}

	raw2 := "A2 UID EXPUNGE 1:5\r\n"
	_, cmd2, err := ParseCommand([]byte(raw2), nil)
	if err != nil {
		t.Fatal(err)
	}
	exp2, ok := cmd2.Body.(imap.ExpungeCommand)
	if !ok || exp2.UID == nil {
		t.Fatalf("got %#v", cmd2.Body)
	}
	if exp2.UID.Kind() != imap.NumKindUID || exp2.UID.String() != "1:5" {
		t.Errorf("got %+v", exp2.UID)
	}
}

func TestParseCommandSearchWithCharset(t *testing.T) {
	raw := "A1 SEARCH CHARSET UTF-8 SEEN\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.Body.(imap.SearchCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if s.Charset == nil || s.Charset.String() != "UTF-8" {
		t.Errorf("Charset = %v", s.Charset)
	}
	if s.Keys != (imap.SearchKeySeen{}) {
		t.Errorf("Keys = %#v", s.Keys)
	}
	if s.UID {
		t.Error("UID should be false")
	}
}

func TestParseCommandUIDSearchNoCharset(t *testing.T) {
	raw := "A1 UID SEARCH ALL\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.Body.(imap.SearchCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if !s.UID {
		t.Error("UID should be true")
	}
	if s.Charset != nil {
		t.Errorf("Charset = %v, want nil", s.Charset)
	}
}

func TestParseCommandFetch(t *testing.T) {
	raw := "A1 FETCH 1:3 (FLAGS UID)\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := cmd.Body.(imap.FetchCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if f.Sequence.Kind() != imap.NumKindSeq || f.Sequence.String() != "1:3" {
		t.Errorf("Sequence = %+v", f.Sequence)
	}
	if len(f.Options.Attributes) != 2 {
		t.Fatalf("Attributes = %#v", f.Options.Attributes)
	}
	if f.Options.Attributes[0] != (imap.FetchAttrFlags{}) {
		t.Errorf("Attributes[0] = %#v", f.Options.Attributes[0])
	}
	if f.Options.Attributes[1] != (imap.FetchAttrUID{}) {
		t.Errorf("Attributes[1] = %#v", f.Options.Attributes[1])
	}
}

func TestParseCommandFetchMacro(t *testing.T) {
	raw := "A1 FETCH 1 FAST\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := cmd.Body.(imap.FetchCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	want := []imap.FetchAttribute{imap.FetchAttrFlags{}, imap.FetchAttrRFC822Size{}, imap.FetchAttrInternalDate{}}
	if len(f.Options.Attributes) != len(want) {
		t.Fatalf("got %#v", f.Options.Attributes)
	}
	for i := range want {
		if f.Options.Attributes[i] != want[i] {
			t.Errorf("Attributes[%d] = %#v, want %#v", i, f.Options.Attributes[i], want[i])
		}
	}
}

func TestParseCommandUIDFetch(t *testing.T) {
	raw := "A1 UID FETCH 100:200 UID\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := cmd.Body.(imap.FetchCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if !f.UID {
		t.Error("UID should be true")
	}
	if f.Sequence.Kind() != imap.NumKindUID || f.Sequence.String() != "100:200" {
		t.Errorf("Sequence = %+v", f.Sequence)
	}
}

func TestParseCommandStore(t *testing.T) {
	raw := "A1 STORE 1:3 +FLAGS.SILENT (\\Seen)\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.Body.(imap.StoreCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if s.Flags.Action != imap.StoreFlagsAdd {
		t.Errorf("Action = %v, want Add", s.Flags.Action)
	}
	if !s.Flags.Silent {
		t.Error("Silent should be true")
	}
	if len(s.Flags.Flags) != 1 || s.Flags.Flags[0] != imap.FlagSeen {
		t.Errorf("Flags = %#v", s.Flags.Flags)
	}
	if s.Options.UnchangedSince != 0 {
		t.Errorf("UnchangedSince = %d, want 0", s.Options.UnchangedSince)
	}
}

func TestParseCommandStoreUnchangedSince(t *testing.T) {
	raw := "A1 STORE 1:3 (UNCHANGEDSINCE 12345) FLAGS (\\Deleted \\Seen)\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.Body.(imap.StoreCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if s.Options.UnchangedSince != 12345 {
		t.Errorf("UnchangedSince = %d, want 12345", s.Options.UnchangedSince)
	}
	if s.Flags.Action != imap.StoreFlagsSet || s.Flags.Silent {
		t.Errorf("got Action=%v Silent=%v", s.Flags.Action, s.Flags.Silent)
	}
	if len(s.Flags.Flags) != 2 {
		t.Fatalf("Flags = %#v", s.Flags.Flags)
	}
}

func TestParseCommandStoreBareFlags(t *testing.T) {
	raw := "A1 STORE 1 -FLAGS \\Seen\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.Body.(imap.StoreCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if s.Flags.Action != imap.StoreFlagsDel {
		t.Errorf("Action = %v, want Del", s.Flags.Action)
	}
	if len(s.Flags.Flags) != 1 || s.Flags.Flags[0] != imap.FlagSeen {
		t.Errorf("Flags = %#v", s.Flags.Flags)
	}
}

func TestParseCommandCopyMove(t *testing.T) {
	tests := []struct {
		raw     string
		isMove  bool
		uidMode bool
	}{
		{"A1 COPY 1:3 Archive\r\n", false, false},
		{"A1 MOVE 1:3 Archive\r\n", true, false},
		{"A1 UID COPY 1:3 Archive\r\n", false, true},
		{"A1 UID MOVE 1:3 Archive\r\n", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, cmd, err := ParseCommand([]byte(tt.raw), nil)
			if err != nil {
				t.Fatal(err)
			}
			switch b := cmd.Body.(type) {
			case imap.CopyCommand:
				if tt.isMove {
					t.Fatalf("got CopyCommand, want MoveCommand")
				}
				if b.UID != tt.uidMode || b.Mailbox.Name() != "Archive" {
					t.Errorf("got %#v", b)
				}
			case imap.MoveCommand:
				if !tt.isMove {
					t.Fatalf("got MoveCommand, want CopyCommand")
				}
				if b.UID != tt.uidMode || b.Mailbox.Name() != "Archive" {
					t.Errorf("got %#v", b)
				}
			default:
				t.Fatalf("got %#v", cmd.Body)
			}
		})
	}
}

func TestParseCommandCompress(t *testing.T) {
	raw := "A1 COMPRESS DEFLATE\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := cmd.Body.(imap.CompressCommand)
	if !ok || c.Mechanism != "DEFLATE" {
		t.Fatalf("got %#v", cmd.Body)
	}
}

func TestParseCommandQuota(t *testing.T) {
	raw := `A1 SETQUOTA "" (STORAGE 512)` + "\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	sq, ok := cmd.Body.(imap.SetQuotaCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if sq.Root != "" || len(sq.Resources) != 1 {
		t.Fatalf("got %#v", sq)
	}
	if sq.Resources[0].Name != imap.QuotaResourceStorage || sq.Resources[0].Limit != 512 {
		t.Errorf("got %#v", sq.Resources[0])
	}

	raw2 := `A2 GETQUOTA ""` + "\r\n"
	_, cmd2, err := ParseCommand([]byte(raw2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if gq, ok := cmd2.Body.(imap.GetQuotaCommand); !ok || gq.Root != "" {
		t.Fatalf("got %#v", cmd2.Body)
	}

	raw3 := "A3 GETQUOTAROOT INBOX\r\n"
	_, cmd3, err := ParseCommand([]byte(raw3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if gqr, ok := cmd3.Body.(imap.GetQuotaRootCommand); !ok || !gqr.Mailbox.IsInbox() {
		t.Fatalf("got %#v", cmd3.Body)
	}
}

func TestParseCommandACL(t *testing.T) {
	raw := "A1 GETACL INBOX\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := cmd.Body.(imap.GetACLCommand); !ok || !g.Mailbox.IsInbox() {
		t.Fatalf("got %#v", cmd.Body)
	}

	raw2 := "A2 MYRIGHTS INBOX\r\n"
	_, cmd2, err := ParseCommand([]byte(raw2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := cmd2.Body.(imap.MyRightsCommand); !ok || !m.Mailbox.IsInbox() {
		t.Fatalf("got %#v", cmd2.Body)
	}

	raw3 := "A3 SETACL INBOX smith lrswipkxteacd\r\n"
	_, cmd3, err := ParseCommand([]byte(raw3), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd3.Body.(imap.SetACLCommand)
	if !ok || s.Identifier != "smith" || s.Rights != "lrswipkxteacd" {
		t.Fatalf("got %#v", cmd3.Body)
	}

	raw4 := "A4 DELETEACL INBOX smith\r\n"
	_, cmd4, err := ParseCommand([]byte(raw4), nil)
	if err != nil {
		t.Fatal(err)
	}
	d, ok := cmd4.Body.(imap.DeleteACLCommand)
	if !ok || d.Identifier != "smith" {
		t.Fatalf("got %#v", cmd4.Body)
	}

	raw5 := "A5 LISTRIGHTS INBOX smith\r\n"
	_, cmd5, err := ParseCommand([]byte(raw5), nil)
	if err != nil {
		t.Fatal(err)
	}
	lr, ok := cmd5.Body.(imap.ListRightsCommand)
	if !ok || lr.Identifier != "smith" {
		t.Fatalf("got %#v", cmd5.Body)
	}
}

func TestParseCommandMetadata(t *testing.T) {
	raw := `A1 GETMETADATA INBOX "/private/comment"` + "\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := cmd.Body.(imap.GetMetadataCommand)
	if !ok || len(g.Entries) != 1 || g.Entries[0] != "/private/comment" {
		t.Fatalf("got %#v", cmd.Body)
	}

	raw2 := `A2 GETMETADATA INBOX ("/private/comment" "/shared/comment")` + "\r\n"
	_, cmd2, err := ParseCommand([]byte(raw2), nil)
	if err != nil {
		t.Fatal(err)
	}
	g2, ok := cmd2.Body.(imap.GetMetadataCommand)
	if !ok || len(g2.Entries) != 2 {
		t.Fatalf("got %#v", cmd2.Body)
	}

	raw3 := `A3 SETMETADATA INBOX ("/private/comment" "hi" "/shared/comment" NIL)` + "\r\n"
	_, cmd3, err := ParseCommand([]byte(raw3), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd3.Body.(imap.SetMetadataCommand)
	if !ok || len(s.Entries) != 2 {
		t.Fatalf("got %#v", cmd3.Body)
	}
	if s.Entries[0].Name != "/private/comment" || s.Entries[0].Value == nil || *s.Entries[0].Value != "hi" {
		t.Errorf("got %#v", s.Entries[0])
	}
	if s.Entries[1].Name != "/shared/comment" || s.Entries[1].Value != nil {
		t.Errorf("got %#v", s.Entries[1])
	}
}

func TestParseCommandSort(t *testing.T) {
	raw := "A1 SORT (REVERSE DATE SUBJECT) UTF-8 ALL\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := cmd.Body.(imap.SortCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if len(s.Options.SortCriteria) != 2 {
		t.Fatalf("got %#v", s.Options.SortCriteria)
	}
	if !s.Options.SortCriteria[0].Reverse || s.Options.SortCriteria[0].Key != imap.SortKeyDate {
		t.Errorf("got %#v", s.Options.SortCriteria[0])
	}
	if s.Options.SortCriteria[1].Reverse || s.Options.SortCriteria[1].Key != imap.SortKeySubject {
		t.Errorf("got %#v", s.Options.SortCriteria[1])
	}
	if s.Options.Charset.String() != "UTF-8" {
		t.Errorf("Charset = %v", s.Options.Charset)
	}
	if s.Options.Search != (imap.SearchKeyAll{}) {
		t.Errorf("Search = %#v", s.Options.Search)
	}
}

func TestParseCommandThread(t *testing.T) {
	raw := "A1 THREAD REFERENCES UTF-8 ALL\r\n"
	_, cmd, err := ParseCommand([]byte(raw), nil)
	if err != nil {
		t.Fatal(err)
	}
	th, ok := cmd.Body.(imap.ThreadCommand)
	if !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
	if th.Algorithm != imap.ThreadAlgorithm("REFERENCES") {
		t.Errorf("Algorithm = %q", th.Algorithm)
	}
	if th.Charset.String() != "UTF-8" {
		t.Errorf("Charset = %v", th.Charset)
	}
	if th.Search != (imap.SearchKeyAll{}) {
		t.Errorf("Search = %#v", th.Search)
	}
}

func TestParseCommandUnknownVerb(t *testing.T) {
	if _, _, err := ParseCommand([]byte("A1 BOGUS\r\n"), nil); err == nil {
		t.Error("expected an error for an unknown command verb")
	}
}

func TestParseCommandGatingDisabled(t *testing.T) {
	fs := extgate.NewFeatureSet()
	if _, _, err := ParseCommand([]byte("A1 IDLE\r\n"), fs); err == nil {
		t.Error("expected IDLE to fail parsing with no capabilities enabled")
	}
	if _, _, err := ParseCommand([]byte("A1 MOVE 1 INBOX\r\n"), fs); err == nil {
		t.Error("expected MOVE to fail parsing with no capabilities enabled")
	}
}

func TestParseCommandGatingEnabled(t *testing.T) {
	fs := extgate.NewFeatureSet(imap.CapIdle)
	_, cmd, err := ParseCommand([]byte("A1 IDLE\r\n"), fs)
	if err != nil {
		t.Fatalf("IDLE should parse with CapIdle enabled: %v", err)
	}
	if _, ok := cmd.Body.(imap.IdleCommand); !ok {
		t.Fatalf("got %#v", cmd.Body)
	}
}

func TestParseCommandGatingNilPermissive(t *testing.T) {
	if _, _, err := ParseCommand([]byte("A1 COMPRESS DEFLATE\r\n"), nil); err != nil {
		t.Errorf("nil FeatureSet should parse COMPRESS unconditionally: %v", err)
	}
}

func TestParseCommandGatingStoreUnchangedSince(t *testing.T) {
	raw := "A1 STORE 1 (UNCHANGEDSINCE 1) +FLAGS (\\Seen)\r\n"
	fs := extgate.NewFeatureSet()
	if _, _, err := ParseCommand([]byte(raw), fs); err == nil {
		t.Error("expected STORE UNCHANGEDSINCE to fail without CapCondStore")
	}

	fs = extgate.NewFeatureSet(imap.CapCondStore)
	if _, _, err := ParseCommand([]byte(raw), fs); err != nil {
		t.Errorf("STORE UNCHANGEDSINCE should parse with CapCondStore enabled: %v", err)
	}
}

func TestParseCommandGatingThreadAlgorithm(t *testing.T) {
	raw := "A1 THREAD REFERENCES UTF-8 ALL\r\n"
	fs := extgate.NewFeatureSet(imap.CapThreadOrderedSubject)
	if _, _, err := ParseCommand([]byte(raw), fs); err == nil {
		t.Error("expected THREAD REFERENCES to fail without CapThreadReferences")
	}

	fs = extgate.NewFeatureSet(imap.CapThreadReferences)
	if _, _, err := ParseCommand([]byte(raw), fs); err != nil {
		t.Errorf("THREAD REFERENCES should parse with CapThreadReferences enabled: %v", err)
	}
}
