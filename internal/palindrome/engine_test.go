package palindrome

import (
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
)

// reference lists every maximal-length palindromic substring by increasing
// start, using the plain definition.
func reference(text string) []Palindrome {
	runes := []rune(text)
	best := 0
	var out []Palindrome
	for i := range runes {
		for j := i; j < len(runes); j++ {
			if !isPalindrome(runes, i, j) {
				continue
			}
			l := j - i + 1
			if l > best {
				best, out = l, nil
			}
			if l == best {
				out = append(out, Palindrome{Start: i, End: j, Length: l, Value: string(runes[i : j+1])})
			}
		}
	}
	if len(out) == 0 {
		return []Palindrome{{Start: 0, End: -1}}
	}
	return out
}

func TestEngines_Cases(t *testing.T) {
	for _, c := range Cases() {
		want := reference(c.Input)
		for _, algo := range Algorithms() {
			e, err := Lookup(algo)
			if err != nil {
				t.Fatal(err)
			}
			tr, res, err := e.Trace(c.Input)
			if err != nil {
				t.Fatalf("%s %q: unexpected error: %v", algo, c.Name, err)
			}
			if tr.Len() == 0 {
				t.Fatalf("%s %q: empty trace", algo, c.Name)
			}
			if !slices.Contains(c.Expected, res.Longest.Value) {
				t.Fatalf("%s %q: longest %q not in %q", algo, c.Name, res.Longest.Value, c.Expected)
			}
			if !reflect.DeepEqual(want, res.Ties) {
				t.Fatalf("%s %q: ties = %+v, want %+v", algo, c.Name, res.Ties, want)
			}
			if res.Longest != res.Ties[0] {
				t.Fatalf("%s %q: longest %+v is not the first tie", algo, c.Name, res.Longest)
			}
			if solved := e.Solve(c.Input); !reflect.DeepEqual(res, solved) {
				t.Fatalf("%s %q: Solve = %+v, Trace = %+v", algo, c.Name, solved, res)
			}
		}
	}
}

func TestEngines_Basic(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ties []string
	}{
		{"babad", "bab", []string{"bab", "aba"}},
		{"cbbd", "bb", []string{"bb"}},
		{"racecar", "racecar", []string{"racecar"}},
		{"ab", "a", []string{"a", "b"}},
	}
	for _, tc := range tests {
		for _, algo := range Algorithms() {
			_, res, err := Visualize(tc.in, string(algo))
			if err != nil {
				t.Fatal(err)
			}
			if res.Longest.Value != tc.want {
				t.Fatalf("%s(%q): got %q, want %q", algo, tc.in, res.Longest.Value, tc.want)
			}
			if !reflect.DeepEqual(res.Values(), tc.ties) {
				t.Fatalf("%s(%q): ties %q, want %q", algo, tc.in, res.Values(), tc.ties)
			}
		}
	}
}

func TestEngines_UpdateMaxSpans(t *testing.T) {
	inputs := []string{"babad", "abacabad", "😊abccba😊", "mañana", "aaaaaaa", "xyzabcdedcbapqr", "^#$", "#a#"}
	for _, in := range inputs {
		runes := []rune(in)
		for _, algo := range Algorithms() {
			tr, res, err := Visualize(in, string(algo))
			if err != nil {
				t.Fatal(err)
			}
			last := 0
			for i, s := range tr.All() {
				up, ok := s.(UpdateMax)
				if !ok {
					continue
				}
				if up.Length <= last {
					t.Fatalf("%s(%q) step %d: length %d does not grow past %d", algo, in, i, up.Length, last)
				}
				if up.Start < 0 || up.End >= len(runes) || up.End != up.Start+up.Length-1 {
					t.Fatalf("%s(%q) step %d: bad span %+v", algo, in, i, up.Span)
				}
				if !isPalindrome(runes, up.Start, up.End) {
					t.Fatalf("%s(%q) step %d: span %+v is not a palindrome", algo, in, i, up.Span)
				}
				last = up.Length
			}
			if last != res.Longest.Length {
				t.Fatalf("%s(%q): last update_max %d, longest %d", algo, in, last, res.Longest.Length)
			}
		}
	}
}

func TestEngines_EmptyInput(t *testing.T) {
	for _, algo := range Algorithms() {
		tr, res, err := Visualize("", string(algo))
		if err != nil {
			t.Fatal(err)
		}
		steps := tr.Steps()
		if len(steps) != 2 {
			t.Fatalf("%s: expected 2 steps, got %d", algo, len(steps))
		}
		if steps[0].Kind() != KindInit {
			t.Fatalf("%s: first step %s", algo, steps[0].Kind())
		}
		found, ok := steps[1].(Found)
		if !ok || found.Span != (Span{Start: 0, End: -1, Length: 0}) {
			t.Fatalf("%s: unexpected final step %#v", algo, steps[1])
		}
		if res.Longest != (Palindrome{Start: 0, End: -1}) || len(res.Ties) != 1 {
			t.Fatalf("%s: unexpected result %+v", algo, res)
		}
	}
}

func TestEngines_InitDescribesAlgorithm(t *testing.T) {
	want := map[Algorithm]string{
		BruteForce:         "Start Brute Force",
		DynamicProgramming: "Start Dynamic Programming",
		ExpandCenter:       "Start Expand Around Center",
		Manacher:           "Start Manacher",
	}
	for algo, desc := range want {
		tr, _, err := Visualize("ab", string(algo))
		if err != nil {
			t.Fatal(err)
		}
		if tr.Algorithm() != algo || tr.Input() != "ab" {
			t.Fatalf("trace metadata = %s %q", tr.Algorithm(), tr.Input())
		}
		if got := tr.At(0).Description(); got != desc {
			t.Fatalf("%s: init %q, want %q", algo, got, desc)
		}
	}
}

func TestBruteForce_StepOrder(t *testing.T) {
	tr, _, err := Visualize("ab", string(BruteForce))
	if err != nil {
		t.Fatal(err)
	}
	var kinds []Kind
	for _, s := range tr.Steps() {
		kinds = append(kinds, s.Kind())
	}
	want := []Kind{
		KindInit,
		KindLoopI, KindSelect, KindCheck, KindUpdateMax,
		KindSelect, KindCheck, KindCompare, KindMismatch,
		KindLoopI, KindSelect, KindCheck, KindFound,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v\nwant    %v", kinds, want)
	}
}

func TestExpandCenter_SkipsOutOfBoundsExpand(t *testing.T) {
	tr, _, err := Visualize("aa", string(ExpandCenter))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range tr.Steps() {
		if e, ok := s.(Expand); ok {
			t.Fatalf("unexpected expand step %+v on a two-rune input", e)
		}
	}

	tr, _, err = Visualize("aba", string(ExpandCenter))
	if err != nil {
		t.Fatal(err)
	}
	var expands []Pair
	for _, s := range tr.Steps() {
		if e, ok := s.(Expand); ok {
			expands = append(expands, e.Pair)
		}
	}
	if !reflect.DeepEqual(expands, []Pair{{Left: 0, Right: 2}}) {
		t.Fatalf("expands = %+v", expands)
	}
}

func TestManacher_Transform(t *testing.T) {
	tr, _, err := Visualize("aba", string(Manacher))
	if err != nil {
		t.Fatal(err)
	}
	tf, ok := tr.At(1).(Transform)
	if !ok {
		t.Fatalf("step 1 is %T", tr.At(1))
	}
	if tf.Value != "^#a#b#a#$" {
		t.Fatalf("transformed = %q", tf.Value)
	}
	if _, ok := tr.At(2).(InitVars); !ok {
		t.Fatalf("step 2 is %T", tr.At(2))
	}
	for _, s := range tr.Steps() {
		if c, ok := s.(Compare); ok && !c.Transformed {
			t.Fatalf("manacher compare %+v not marked transformed", c)
		}
	}
}

func TestManacher_SentinelLookalikes(t *testing.T) {
	_, res, err := Visualize("#a#", string(Manacher))
	if err != nil {
		t.Fatal(err)
	}
	if res.Longest.Value != "#a#" {
		t.Fatalf("got %q", res.Longest.Value)
	}

	_, res, err = Visualize("^#$", string(Manacher))
	if err != nil {
		t.Fatal(err)
	}
	if res.Longest.Length != 1 || len(res.Ties) != 3 {
		t.Fatalf("got %+v", res)
	}
}

func TestTraceDP_Table(t *testing.T) {
	const in = "abcba"
	runes := []rune(in)
	_, _, table, err := TraceDP(in)
	if err != nil {
		t.Fatal(err)
	}
	if table.Size() != len(runes) {
		t.Fatalf("size = %d", table.Size())
	}
	for i := range runes {
		for j := range runes {
			got := table.Get(i, j)
			switch {
			case j < i:
				if got != Unset {
					t.Fatalf("dp[%d][%d] below the diagonal = %s", i, j, got)
				}
			case isPalindrome(runes, i, j):
				if got != True {
					t.Fatalf("dp[%d][%d] = %s, want true", i, j, got)
				}
			default:
				if got != False {
					t.Fatalf("dp[%d][%d] = %s, want false", i, j, got)
				}
			}
		}
	}
}

func TestTraceDP_AllSame(t *testing.T) {
	_, res, table, err := TraceDP("aaaaaaa")
	if err != nil {
		t.Fatal(err)
	}
	if res.Longest.Value != "aaaaaaa" {
		t.Fatalf("got %q", res.Longest.Value)
	}
	for i := 0; i < 7; i++ {
		for j := i; j < 7; j++ {
			if table.Get(i, j) != True {
				t.Fatalf("dp[%d][%d] = %s", i, j, table.Get(i, j))
			}
		}
	}

	_, _, table, err = TraceDP("")
	if err != nil {
		t.Fatal(err)
	}
	if table.Size() != 0 {
		t.Fatalf("empty table size = %d", table.Size())
	}
}

func TestTable_Clone(t *testing.T) {
	a := NewTable(2)
	a.Set(0, 1, True)
	b := a.Clone()
	b.Set(0, 1, False)
	if a.Get(0, 1) != True || b.Get(0, 1) != False {
		t.Fatal("clone shares cells with the original")
	}
}

func TestMaxSteps(t *testing.T) {
	for _, algo := range Algorithms() {
		tr, _, err := Visualize("abcdefgh", string(algo), WithMaxSteps(10))
		if !errors.Is(err, ErrInputTooLarge) {
			t.Fatalf("%s: expected ErrInputTooLarge, got %v", algo, err)
		}
		if tr != nil {
			t.Fatalf("%s: expected no partial trace", algo)
		}
	}

	if _, _, err := Visualize(strings.Repeat("ab", 40), string(BruteForce), WithMaxSteps(0)); err != nil {
		t.Fatalf("disabled cap: %v", err)
	}
}

func TestLocale(t *testing.T) {
	tr, _, err := Visualize("aba", string(Manacher), WithLocale(Vietnamese))
	if err != nil {
		t.Fatal(err)
	}
	if got := tr.At(0).Description(); got != "Bắt đầu Thuật toán Manacher" {
		t.Fatalf("got %q", got)
	}

	if ParseLocale("vi") != Vietnamese || ParseLocale("fr") != English || ParseLocale("") != English {
		t.Fatal("unexpected locale parsing")
	}

	// Every message exists in both catalogs.
	for id := range catalogs[English] {
		if _, ok := catalogs[Vietnamese][id]; !ok {
			t.Fatalf("message %d missing from vi catalog", id)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm(" manacher ")
	if err != nil || a != Manacher {
		t.Fatalf("got %q, %v", a, err)
	}
	if _, err := ParseAlgorithm("bogo"); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Fatalf("expected ErrInvalidAlgorithm, got %v", err)
	}
	if _, _, err := Visualize("abc", "quick"); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Fatalf("expected ErrInvalidAlgorithm, got %v", err)
	}
	if _, err := Lookup("nope"); !errors.Is(err, ErrInvalidAlgorithm) {
		t.Fatalf("expected ErrInvalidAlgorithm, got %v", err)
	}
}

func TestInvariantError(t *testing.T) {
	var err error = &InvariantError{Algorithm: DynamicProgramming, Detail: "dp[1][0] read before write"}
	if !errors.Is(err, ErrInternalInvariant) {
		t.Fatal("InvariantError must wrap ErrInternalInvariant")
	}
	if !strings.Contains(err.Error(), "dp[1][0] read before write") {
		t.Fatalf("message %q", err.Error())
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("unread cell must panic")
			}
		}()
		dpEngine{}.read(NewTable(2), 1, 0)
	}()
}

func TestTrace_Immutable(t *testing.T) {
	tr, _, err := Visualize("aba", string(ExpandCenter))
	if err != nil {
		t.Fatal(err)
	}
	steps := tr.Steps()
	steps[0] = Found{}
	if tr.At(0).Kind() != KindInit {
		t.Fatal("Steps must return a copy")
	}

	n := 0
	for range tr.All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("iteration stopped at %d", n)
	}
}

func TestTrace_MarshalJSON(t *testing.T) {
	tr, _, err := Visualize("aa", string(DynamicProgramming))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	var out []map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != tr.Len() {
		t.Fatalf("got %d records for %d steps", len(out), tr.Len())
	}
	if out[1]["type"] != "dp_update" || out[1]["row"] != float64(0) || out[1]["value"] != true {
		t.Fatalf("unexpected dp_update record %v", out[1])
	}
}

func TestToWire(t *testing.T) {
	w := ToWire(UpdateMax{Meta: Meta{Text: "New max length: 3", PseudoLine: 7}, Span: spanOf(2, 3)})
	if w.Type != KindUpdateMax || *w.Start != 2 || *w.End != 4 || *w.Length != 3 || w.Line != 7 {
		t.Fatalf("unexpected wire %+v", w)
	}

	w = ToWire(Center{Left: 1, Right: 1})
	if w.Index == nil || *w.Index != 1 || w.Indices != nil {
		t.Fatalf("odd center %+v", w)
	}
	w = ToWire(Center{Left: 1, Right: 2})
	if !reflect.DeepEqual(w.Indices, []int{1, 2}) || w.Index != nil {
		t.Fatalf("even center %+v", w)
	}

	w = ToWire(Mirror{Index: 5, MirrorIndex: 3, Value: 1})
	if *w.Index != 5 || *w.MirrorIndex != 3 || w.Value != 1 {
		t.Fatalf("mirror %+v", w)
	}

	// Every kind has a wire form.
	seen := map[Kind]bool{}
	for _, algo := range Algorithms() {
		tr, _, err := Visualize("abaab", string(algo))
		if err != nil {
			t.Fatal(err)
		}
		for _, w := range tr.Wire() {
			seen[w.Type] = true
		}
	}
	for _, k := range Kinds() {
		if !seen[k] {
			t.Fatalf("kind %s never emitted", k)
		}
	}
}

func TestDescribe(t *testing.T) {
	infos := Describe()
	if len(infos) != 4 {
		t.Fatalf("got %d infos", len(infos))
	}
	for i, algo := range Algorithms() {
		if infos[i].Algorithm != algo || infos[i].Name == "" || len(infos[i].PseudoCode) == 0 {
			t.Fatalf("info %d = %+v", i, infos[i])
		}
	}
	if infos[3].TimeComplexity != "O(N)" {
		t.Fatalf("manacher complexity %q", infos[3].TimeComplexity)
	}
}

func TestCases_ReturnsCopy(t *testing.T) {
	a := Cases()
	a[0].Input = "changed"
	if Cases()[0].Input != "babad" {
		t.Fatal("Cases must not expose the catalog")
	}
}
