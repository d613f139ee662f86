package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Code
	}{
		{"i", 'i'},
		{"I", 'I'},
		{"0", '0'},
		{":", Colon},
		{"<C-a>", CtrlA},
		{"<c-Z>", CtrlZ},
		{"<Ctrl-b>", CtrlB},
		{"<Ctrl+b>", CtrlB},
		{"<Esc>", Escape},
		{"<escape>", Escape},
		{"<CR>", Enter},
		{"<Enter>", Enter},
		{"<BS>", Backspace},
		{"<Space>", Space},
		{"<lt>", '<'},
		{"<Up>", Up},
		{"<F12>", F12},
		{"Esc", Escape},
		{"Enter", Enter},
		{"é", 'é'},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"<A-x>", ErrInvalidSpec},
		{"<C-1>", ErrInvalidSpec},
		{"<C-ab>", ErrInvalidSpec},
		{"<nosuchkey>", ErrInvalidSpec},
		{"nosuchkey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		input string
		want  Sequence
	}{
		{"i", NewSequence('i')},
		{"32j", NewSequence('3', '2', 'j')},
		{"<C-a><C-b>", NewSequence(CtrlA, CtrlB)},
		{"<Esc>j", NewSequence(Escape, 'j')},
		{"Esc j", NewSequence(Escape, 'j')},
		{"a<b", NewSequence('a', '<', 'b')},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSequence(tt.input)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error = %v", tt.input, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParseSequence(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSequenceErrors(t *testing.T) {
	if _, err := ParseSequence(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("empty sequence error = %v, want ErrEmptySpec", err)
	}
	if _, err := ParseSequence("a<>b"); !errors.Is(err, ErrUnmatchedBracket) {
		t.Errorf("empty brackets error = %v, want ErrUnmatchedBracket", err)
	}
	if _, err := ParseSequence(":w now"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("multi-character field error = %v, want ErrInvalidSpec", err)
	}
	if _, err := ParseSequence("<A-x>"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("bad modifier error = %v, want ErrInvalidSpec", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("<nosuchkey>")
}

func TestCodeClassification(t *testing.T) {
	if !CtrlA.IsCtrl() || Code('a').IsCtrl() {
		t.Error("IsCtrl misclassifies CtrlA / 'a'")
	}
	if !Up.IsSpecial() || Code('x').IsSpecial() {
		t.Error("IsSpecial misclassifies Up / 'x'")
	}
	if !Code('x').IsPrintable() || Escape.IsPrintable() || Backspace.IsPrintable() || Up.IsPrintable() {
		t.Error("IsPrintable misclassifies")
	}
	if !Enter.IsEnter() || !Newline.IsEnter() || Code('e').IsEnter() {
		t.Error("IsEnter misclassifies")
	}
	if Ctrl('B') != CtrlB || Ctrl('1') != None {
		t.Error("Ctrl() conversion is wrong")
	}
	if Escape != 27 || Colon != 58 || CtrlZ != 26 {
		t.Error("control code values drifted")
	}
	if Code('q').Rune() != 'q' || Up.Rune() != 0 {
		t.Error("Rune() is wrong")
	}
}

func TestCodePretty(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{'i', "<i>"},
		{CtrlA, "<CTRL+a>"},
		{Escape, "<Esc>"},
		{Up, "<Up>"},
	}
	for _, tt := range tests {
		if got := tt.code.Pretty(); got != tt.want {
			t.Errorf("%d.Pretty() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
