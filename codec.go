package constellation

import (
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// MarshalEasyJSON and UnmarshalEasyJSON are hand-written here in the style
// of the teacher's generated cdp domain types (e.g. cdp/log/events.go):
// direct jwriter.Writer/jlexer.Lexer calls, no reflection. internal/
// compositor uses these to code PipelineSnapshot and SendableFrameTree
// onto the wire for the SetIds handshake (§4.8, §6).

// MarshalEasyJSON implements easyjson.Marshaler.
func (s *PipelineSnapshot) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"id":`)
	w.Int64(int64(s.ID))
	w.RawString(`,"url":`)
	w.String(s.URL)
	w.RawString(`,"navType":`)
	w.Uint8(uint8(s.NavType))
	if s.Subpage != nil {
		w.RawString(`,"subpage":`)
		w.Uint64(uint64(*s.Subpage))
	}
	w.RawByte('}')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (s *PipelineSnapshot) UnmarshalEasyJSON(l *jlexer.Lexer) {
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "id":
			s.ID = PipelineID(l.Int64())
		case "url":
			s.URL = l.String()
		case "navType":
			s.NavType = NavigationType(l.Uint8())
		case "subpage":
			v := SubpageID(l.Uint64())
			s.Subpage = &v
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// MarshalJSON satisfies encoding/json, delegating to MarshalEasyJSON per
// easyjson's own convention for generated types.
func (s *PipelineSnapshot) MarshalJSON() ([]byte, error) {
	w := &jwriter.Writer{}
	s.MarshalEasyJSON(w)
	return w.BuildBytes()
}

// UnmarshalJSON satisfies encoding/json.
func (s *PipelineSnapshot) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	s.UnmarshalEasyJSON(&l)
	return l.Error()
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (s *SendableFrameTree) MarshalEasyJSON(w *jwriter.Writer) {
	if s == nil {
		w.RawString("null")
		return
	}
	w.RawByte('{')
	w.RawString(`"pipeline":`)
	s.PipelineSnapshot.MarshalEasyJSON(w)
	w.RawString(`,"children":`)
	w.RawByte('[')
	for i, c := range s.Children {
		if i > 0 {
			w.RawByte(',')
		}
		c.MarshalEasyJSON(w)
	}
	w.RawByte(']')
	w.RawByte('}')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (s *SendableFrameTree) UnmarshalEasyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		switch key {
		case "pipeline":
			s.PipelineSnapshot.UnmarshalEasyJSON(l)
		case "children":
			if l.IsNull() {
				l.Skip()
			} else {
				l.Delim('[')
				for !l.IsDelim(']') {
					var c SendableFrameTree
					c.UnmarshalEasyJSON(l)
					s.Children = append(s.Children, &c)
					l.WantComma()
				}
				l.Delim(']')
			}
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// MarshalJSON satisfies encoding/json.
func (s *SendableFrameTree) MarshalJSON() ([]byte, error) {
	w := &jwriter.Writer{}
	s.MarshalEasyJSON(w)
	return w.BuildBytes()
}

// UnmarshalJSON satisfies encoding/json.
func (s *SendableFrameTree) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	s.UnmarshalEasyJSON(&l)
	return l.Error()
}
