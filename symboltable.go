package tinyc

// Symbol records one successful declaration.
type Symbol struct {
	Name  string
	Type  string // "int" or "float"
	Line  int
	Scope int // block nesting depth; 0 is top level
}

// SymbolTable tracks which names are visible at the current block depth.
//
// Every accepted declaration stays in the permanent record returned by
// AllSymbols, even after its scope has exited.
type SymbolTable struct {
	all    []Symbol
	active map[string][]Symbol // oldest (shallowest) first
	depth  int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		active: make(map[string][]Symbol),
	}
}

// Add declares name in the current scope. It returns false, and changes
// nothing, if name is already declared in the current scope.
func (st *SymbolTable) Add(name string, typ string, line int) bool {
	stack := st.active[name]
	if len(stack) > 0 && stack[len(stack)-1].Scope == st.depth {
		return false
	}

	sym := Symbol{Name: name, Type: typ, Line: line, Scope: st.depth}
	st.active[name] = append(stack, sym)
	st.all = append(st.all, sym)
	return true
}

// Lookup returns the innermost visible declaration of name, or nil.
func (st *SymbolTable) Lookup(name string) *Symbol {
	stack := st.active[name]
	if len(stack) == 0 {
		return nil
	}
	sym := stack[len(stack)-1]
	return &sym
}

func (st *SymbolTable) EnterScope() {
	st.depth++
}

// ExitScope retires every declaration made in the current scope.
//
// Panics if no scope was entered.
func (st *SymbolTable) ExitScope() {
	if st.depth == 0 {
		panic("SymbolTable.ExitScope called at top level")
	}

	for name, stack := range st.active {
		for len(stack) > 0 && stack[len(stack)-1].Scope == st.depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			delete(st.active, name)
		} else {
			st.active[name] = stack
		}
	}
	st.depth--
}

// Depth returns the current block nesting depth.
func (st *SymbolTable) Depth() int {
	return st.depth
}

// AllSymbols returns every accepted declaration in declaration order.
func (st *SymbolTable) AllSymbols() []Symbol {
	out := make([]Symbol, len(st.all))
	copy(out, st.all)
	return out
}

// activeCount returns the number of visible declarations across all names.
func (st *SymbolTable) activeCount() int {
	n := 0
	for _, stack := range st.active {
		n += len(stack)
	}
	return n
}
