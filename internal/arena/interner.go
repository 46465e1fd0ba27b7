package arena

import "fmt"

// Symbol is an interned string handle. Equal strings always produce equal
// Symbols within the same Interner, so identifier comparisons in the
// compiler reduce to integer equality instead of string comparison.
type Symbol struct {
	raw uint32
}

func (s Symbol) String() string {
	return fmt.Sprintf("Symbol(%d)", s.raw)
}

// Interner deduplicates strings into Symbol handles. The zero value is
// ready to use. Not safe for concurrent use; callers needing a shared
// interner across queries must synchronize externally (itemtree.Collect
// builds a fresh Interner for each item tree it collects).
type Interner struct {
	bySymbol []string
	byString map[string]Symbol
}

// Intern returns the Symbol for s, allocating a new one on first sight.
func (in *Interner) Intern(s string) Symbol {
	if in.byString == nil {
		in.byString = make(map[string]Symbol)
	}
	if sym, ok := in.byString[s]; ok {
		return sym
	}
	sym := Symbol{raw: uint32(len(in.bySymbol) + 1)}
	in.bySymbol = append(in.bySymbol, s)
	in.byString[s] = sym
	return sym
}

// Resolve returns the string for sym. It panics on the zero Symbol or on a
// Symbol beyond in's length, the same contract as Arena[T].Get; a Symbol
// from another Interner that happens to be in range is not detected.
func (in *Interner) Resolve(sym Symbol) string {
	if sym.raw == 0 || int(sym.raw) > len(in.bySymbol) {
		panic(fmt.Sprintf("arena: symbol %v not owned by this interner", sym))
	}
	return in.bySymbol[sym.raw-1]
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int {
	return len(in.bySymbol)
}
