package register

import "testing"

func TestSetYank(t *testing.T) {
	var f File
	f.SetYank(0, "hello", false)

	if c, _ := f.Get(Unnamed); c.Text != "hello" {
		t.Errorf("unnamed = %q, want %q", c.Text, "hello")
	}
	if c, _ := f.Get(LastYank); c.Text != "hello" {
		t.Errorf("register 0 = %q, want %q", c.Text, "hello")
	}
}

func TestSetYankNamed(t *testing.T) {
	var f File
	f.SetYank('a', "abc", true)

	if c, _ := f.Get('a'); c.Text != "abc" || !c.Linewise {
		t.Errorf("register a = %+v, want linewise abc", c)
	}
	if c, _ := f.Get(Unnamed); c.Text != "abc" {
		t.Errorf("unnamed = %q, want %q", c.Text, "abc")
	}
	if c, _ := f.Get(LastYank); c.Text != "abc" {
		t.Errorf("register 0 = %q, want %q", c.Text, "abc")
	}
}

func TestUppercaseAppend(t *testing.T) {
	var f File
	f.SetYank('a', "one", false)
	f.SetYank('A', "two", false)

	if c, _ := f.Get('a'); c.Text != "onetwo" {
		t.Errorf("register a = %q, want %q", c.Text, "onetwo")
	}
	// Uppercase reads resolve to the lowercase register.
	if c, _ := f.Get('A'); c.Text != "onetwo" {
		t.Errorf("register A = %q, want %q", c.Text, "onetwo")
	}
}

func TestUppercaseAppendLinewise(t *testing.T) {
	var f File
	f.SetYank('b', "one\n", true)
	f.SetYank('B', "two\n", true)

	if c, _ := f.Get('b'); c.Text != "one\ntwo\n" {
		t.Errorf("register b = %q, want %q", c.Text, "one\ntwo\n")
	}
}

func TestSmallDelete(t *testing.T) {
	var f File
	f.SetDelete(0, "x", false)

	if c, _ := f.Get(SmallDelete); c.Text != "x" || !c.FromDelete {
		t.Errorf("small delete = %+v, want fromDelete x", c)
	}
	if c, _ := f.Get(Unnamed); c.Text != "x" {
		t.Errorf("unnamed = %q, want %q", c.Text, "x")
	}
	if _, ok := f.Get('1'); ok {
		t.Error("small delete must not touch the delete ring")
	}
}

func TestDeleteRingRotation(t *testing.T) {
	var f File
	f.SetDelete(0, "first\n", true)
	f.SetDelete(0, "second\n", true)
	f.SetDelete(0, "third\n", true)

	if c, _ := f.Get('1'); c.Text != "third\n" {
		t.Errorf("register 1 = %q, want %q", c.Text, "third\n")
	}
	if c, _ := f.Get('2'); c.Text != "second\n" {
		t.Errorf("register 2 = %q, want %q", c.Text, "second\n")
	}
	if c, _ := f.Get('3'); c.Text != "first\n" {
		t.Errorf("register 3 = %q, want %q", c.Text, "first\n")
	}
}

func TestBlackHole(t *testing.T) {
	var f File
	f.SetYank(0, "keep", false)
	f.SetDelete(BlackHole, "discard", false)
	f.SetYank(BlackHole, "discard", false)

	if c, _ := f.Get(Unnamed); c.Text != "keep" {
		t.Errorf("unnamed = %q, want %q", c.Text, "keep")
	}
	if _, ok := f.Get(BlackHole); ok {
		t.Error("black hole register must stay empty")
	}
}

func TestExplicitDeleteRegister(t *testing.T) {
	var f File
	f.SetDelete('q', "text", false)

	if c, _ := f.Get('q'); c.Text != "text" {
		t.Errorf("register q = %q, want %q", c.Text, "text")
	}
	if c, _ := f.Get(Unnamed); c.Text != "text" {
		t.Errorf("unnamed = %q, want %q", c.Text, "text")
	}
	if _, ok := f.Get('1'); ok {
		t.Error("explicit register delete must not rotate the ring")
	}
}

func TestCloneIndependence(t *testing.T) {
	var f File
	f.SetYank('a', "before", false)

	clone := f.Clone()
	f.SetYank('a', "after", false)

	if c, _ := clone.Get('a'); c.Text != "before" {
		t.Errorf("clone register a = %q, want %q", c.Text, "before")
	}
}

func TestIsValid(t *testing.T) {
	valid := []rune{'"', 'a', 'z', 'A', 'Z', '0', '9', '-', '_'}
	for _, r := range valid {
		if !IsValid(r) {
			t.Errorf("IsValid(%q) = false, want true", r)
		}
	}
	invalid := []rune{'!', '@', ' ', '$'}
	for _, r := range invalid {
		if IsValid(r) {
			t.Errorf("IsValid(%q) = true, want false", r)
		}
	}
}
