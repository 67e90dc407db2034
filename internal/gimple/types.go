package gimple

// Function is the compiled body of one source function.
type Function struct {
	CFG        *CFG          `gimple:"cfg"`
	Decl       *FunctionDecl `gimple:"decl"`
	End        *Location     `gimple:"end"`
	LocalDecls []*VarDecl    `gimple:"local_decls"`
}

func (f *Function) Kind() string           { return "Function" }
func (f *Function) Properties() []Property { return properties(f) }

// FunctionDecl is the declaration of a function. Its name is the
// program-global symbol, so two exports of the same program agree on its
// identity.
type FunctionDecl struct {
	Arguments []*ParmDecl `gimple:"arguments"`
	Function  *Function   `gimple:"function"`
	Location  *Location   `gimple:"location"`
	Name      string      `gimple:"name"`
	Result    *ResultDecl `gimple:"result"`
	StrNoUID  string      `gimple:"str_no_uid"`
}

func (d *FunctionDecl) Kind() string           { return "FunctionDecl" }
func (d *FunctionDecl) Properties() []Property { return properties(d) }
func (d *FunctionDecl) GlobalName() string     { return d.Name }

// CFG is the control-flow graph of a function. BasicBlocks includes the
// entry and exit blocks.
type CFG struct {
	BasicBlocks []*BasicBlock `gimple:"basic_blocks"`
	Entry       *BasicBlock   `gimple:"entry"`
	Exit        *BasicBlock   `gimple:"exit"`
}

func (c *CFG) Kind() string           { return "Cfg" }
func (c *CFG) Properties() []Property { return properties(c) }

// BasicBlock is a straight-line statement sequence in the CFG. Index is
// unique within a function and identifies the block.
type BasicBlock struct {
	Gimple   []Node       `gimple:"gimple"`
	Index    int          `gimple:"index"`
	PhiNodes []*GimplePhi `gimple:"phi_nodes"`
	Preds    []*Edge      `gimple:"preds"`
	Succs    []*Edge      `gimple:"succs"`
}

func (b *BasicBlock) Kind() string           { return "BasicBlock" }
func (b *BasicBlock) Properties() []Property { return properties(b) }

// Edge is a directed control-flow edge between two basic blocks.
type Edge struct {
	Dest       *BasicBlock `gimple:"dest"`
	Fallthru   bool        `gimple:"fallthru"`
	FalseValue bool        `gimple:"false_value"`
	Src        *BasicBlock `gimple:"src"`
	TrueValue  bool        `gimple:"true_value"`
}

func (e *Edge) Kind() string           { return "Edge" }
func (e *Edge) Properties() []Property { return properties(e) }

// GimpleAssign is an assignment statement: lhs = rhs operands.
type GimpleAssign struct {
	Block    *BasicBlock `gimple:"block"`
	LHS      Node        `gimple:"lhs"`
	Loc      *Location   `gimple:"loc"`
	RHS      []Node      `gimple:"rhs"`
	StrNoUID string      `gimple:"str_no_uid"`
}

func (s *GimpleAssign) Kind() string           { return "GimpleAssign" }
func (s *GimpleAssign) Properties() []Property { return properties(s) }
func (s *GimpleAssign) CanonicalForm() string  { return s.StrNoUID }

// GimpleCond is a conditional branch comparing lhs against rhs.
type GimpleCond struct {
	Block    *BasicBlock `gimple:"block"`
	LHS      Node        `gimple:"lhs"`
	Loc      *Location   `gimple:"loc"`
	RHS      Node        `gimple:"rhs"`
	StrNoUID string      `gimple:"str_no_uid"`
}

func (s *GimpleCond) Kind() string           { return "GimpleCond" }
func (s *GimpleCond) Properties() []Property { return properties(s) }
func (s *GimpleCond) CanonicalForm() string  { return s.StrNoUID }

// GimpleCall is a call statement. Fn is the called address expression,
// Fndecl the callee declaration when known, RHS the defined result operand.
type GimpleCall struct {
	Args     []Node      `gimple:"args"`
	Block    *BasicBlock `gimple:"block"`
	Fn       Node        `gimple:"fn"`
	Fndecl   Node        `gimple:"fndecl"`
	Loc      *Location   `gimple:"loc"`
	Noreturn bool        `gimple:"noreturn"`
	RHS      Node        `gimple:"rhs"`
	StrNoUID string      `gimple:"str_no_uid"`
}

func (s *GimpleCall) Kind() string           { return "GimpleCall" }
func (s *GimpleCall) Properties() []Property { return properties(s) }
func (s *GimpleCall) CanonicalForm() string  { return s.StrNoUID }

// GimpleReturn is a return statement with an optional return value.
type GimpleReturn struct {
	Block    *BasicBlock `gimple:"block"`
	Loc      *Location   `gimple:"loc"`
	Retval   Node        `gimple:"retval"`
	StrNoUID string      `gimple:"str_no_uid"`
}

func (s *GimpleReturn) Kind() string           { return "GimpleReturn" }
func (s *GimpleReturn) Properties() []Property { return properties(s) }
func (s *GimpleReturn) CanonicalForm() string  { return s.StrNoUID }

// GimpleLabel marks a label definition point.
type GimpleLabel struct {
	Block    *BasicBlock `gimple:"block"`
	Label    *LabelDecl  `gimple:"label"`
	Loc      *Location   `gimple:"loc"`
	StrNoUID string      `gimple:"str_no_uid"`
}

func (s *GimpleLabel) Kind() string           { return "GimpleLabel" }
func (s *GimpleLabel) Properties() []Property { return properties(s) }
func (s *GimpleLabel) CanonicalForm() string  { return s.StrNoUID }

// GimplePhi is an SSA phi node defining lhs at a block join point.
type GimplePhi struct {
	Block    *BasicBlock `gimple:"block"`
	LHS      Node        `gimple:"lhs"`
	Loc      *Location   `gimple:"loc"`
	StrNoUID string      `gimple:"str_no_uid"`
}

func (s *GimplePhi) Kind() string           { return "GimplePhi" }
func (s *GimplePhi) Properties() []Property { return properties(s) }
func (s *GimplePhi) CanonicalForm() string  { return s.StrNoUID }

// SSAName is an SSA versioned reference to a declaration.
type SSAName struct {
	DefStmt  Node   `gimple:"def_stmt"`
	StrNoUID string `gimple:"str_no_uid"`
	Type     Node   `gimple:"type"`
	Var      Node   `gimple:"var"`
	Version  int    `gimple:"version"`
}

func (n *SSAName) Kind() string           { return "SsaName" }
func (n *SSAName) Properties() []Property { return properties(n) }
func (n *SSAName) CanonicalForm() string  { return n.StrNoUID }

// IntegerCst is an integer constant operand.
type IntegerCst struct {
	Constant int64  `gimple:"constant"`
	StrNoUID string `gimple:"str_no_uid"`
	Type     Node   `gimple:"type"`
}

func (n *IntegerCst) Kind() string           { return "IntegerCst" }
func (n *IntegerCst) Properties() []Property { return properties(n) }
func (n *IntegerCst) CanonicalForm() string  { return n.StrNoUID }

// ArrayRef is an array element access: array[index].
type ArrayRef struct {
	Array    Node      `gimple:"array"`
	Index    Node      `gimple:"index"`
	Location *Location `gimple:"location"`
	StrNoUID string    `gimple:"str_no_uid"`
	Type     Node      `gimple:"type"`
}

func (n *ArrayRef) Kind() string           { return "ArrayRef" }
func (n *ArrayRef) Properties() []Property { return properties(n) }
func (n *ArrayRef) CanonicalForm() string  { return n.StrNoUID }

// MemRef is a memory dereference of its operand.
type MemRef struct {
	Location *Location `gimple:"location"`
	Operand  Node      `gimple:"operand"`
	StrNoUID string    `gimple:"str_no_uid"`
	Type     Node      `gimple:"type"`
}

func (n *MemRef) Kind() string           { return "MemRef" }
func (n *MemRef) Properties() []Property { return properties(n) }
func (n *MemRef) CanonicalForm() string  { return n.StrNoUID }

// AddrExpr takes the address of its operand.
type AddrExpr struct {
	Location *Location `gimple:"location"`
	Operand  Node      `gimple:"operand"`
	StrNoUID string    `gimple:"str_no_uid"`
	Type     Node      `gimple:"type"`
}

func (n *AddrExpr) Kind() string           { return "AddrExpr" }
func (n *AddrExpr) Properties() []Property { return properties(n) }
func (n *AddrExpr) CanonicalForm() string  { return n.StrNoUID }

// VarDecl is a local or global variable declaration. Compiler temporaries
// have no name.
type VarDecl struct {
	Location *Location `gimple:"location"`
	Name     string    `gimple:"name"`
	StrNoUID string    `gimple:"str_no_uid"`
	Type     Node      `gimple:"type"`
}

func (d *VarDecl) Kind() string           { return "VarDecl" }
func (d *VarDecl) Properties() []Property { return properties(d) }
func (d *VarDecl) CanonicalForm() string  { return d.StrNoUID }

// ParmDecl is a formal parameter declaration.
type ParmDecl struct {
	Location *Location `gimple:"location"`
	Name     string    `gimple:"name"`
	StrNoUID string    `gimple:"str_no_uid"`
	Type     Node      `gimple:"type"`
}

func (d *ParmDecl) Kind() string           { return "ParmDecl" }
func (d *ParmDecl) Properties() []Property { return properties(d) }
func (d *ParmDecl) CanonicalForm() string  { return d.StrNoUID }

// LabelDecl is a label declaration.
type LabelDecl struct {
	Location *Location `gimple:"location"`
	Name     string    `gimple:"name"`
	StrNoUID string    `gimple:"str_no_uid"`
}

func (d *LabelDecl) Kind() string           { return "LabelDecl" }
func (d *LabelDecl) Properties() []Property { return properties(d) }
func (d *LabelDecl) CanonicalForm() string  { return d.StrNoUID }

// ResultDecl is the implicit declaration holding a function's return value.
type ResultDecl struct {
	Location *Location `gimple:"location"`
	StrNoUID string    `gimple:"str_no_uid"`
	Type     Node      `gimple:"type"`
}

func (d *ResultDecl) Kind() string           { return "ResultDecl" }
func (d *ResultDecl) Properties() []Property { return properties(d) }
func (d *ResultDecl) CanonicalForm() string  { return d.StrNoUID }

// TypeDecl is a type declaration (typedef).
type TypeDecl struct {
	Location *Location `gimple:"location"`
	Name     string    `gimple:"name"`
	Type     Node      `gimple:"type"`
}

func (d *TypeDecl) Kind() string           { return "TypeDecl" }
func (d *TypeDecl) Properties() []Property { return properties(d) }

// Location is a source position. File and line carry its identity; two
// exports referencing the same file and line unify on one location node.
type Location struct {
	Column int    `gimple:"column"`
	File   string `gimple:"file"`
	Line   int    `gimple:"line"`
}

func (l *Location) Kind() string             { return "Location" }
func (l *Location) Properties() []Property   { return properties(l) }
func (l *Location) SourceKey() (string, int) { return l.File, l.Line }

// PointerType is a pointer type. Dereference is the pointed-to type and
// Pointer the pointer-to-this type, so type nodes chain without bound.
type PointerType struct {
	Dereference Node   `gimple:"dereference"`
	Name        string `gimple:"name"`
	Pointer     Node   `gimple:"pointer"`
}

func (t *PointerType) Kind() string           { return "PointerType" }
func (t *PointerType) Properties() []Property { return properties(t) }

// IntegerType is an integral type.
type IntegerType struct {
	Name      string `gimple:"name"`
	Pointer   Node   `gimple:"pointer"`
	Precision int    `gimple:"precision"`
	Unsigned  bool   `gimple:"unsigned"`
}

func (t *IntegerType) Kind() string           { return "IntegerType" }
func (t *IntegerType) Properties() []Property { return properties(t) }

// RealType is a floating-point type.
type RealType struct {
	Name      string `gimple:"name"`
	Pointer   Node   `gimple:"pointer"`
	Precision int    `gimple:"precision"`
}

func (t *RealType) Kind() string           { return "RealType" }
func (t *RealType) Properties() []Property { return properties(t) }

// VoidType is the void type.
type VoidType struct {
	Name    string `gimple:"name"`
	Pointer Node   `gimple:"pointer"`
}

func (t *VoidType) Kind() string           { return "VoidType" }
func (t *VoidType) Properties() []Property { return properties(t) }

// BooleanType is the boolean type.
type BooleanType struct {
	Name    string `gimple:"name"`
	Pointer Node   `gimple:"pointer"`
}

func (t *BooleanType) Kind() string           { return "BooleanType" }
func (t *BooleanType) Properties() []Property { return properties(t) }
