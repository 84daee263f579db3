/*
Grammars

	program    --> decl* EOF ;
	decl       --> classDecl
	             | funDecl
	             | varDecl
	             | stmt ;
	classDecl  --> "class" IDENTIFIER "{" function* "}" ;
	funDecl    --> "fun" function ;
	function   --> IDENTIFIER "(" params? ")" block ;
	params     --> IDENTIFIER ( "," IDENTIFIER )* ;
	varDecl    --> "var" IDENTIFIER ( "=" expr )? ";" ;
	stmt       --> block
	             | breakStmt
	             | exprStmt
	             | forStmt
	             | ifStmt
	             | printStmt
	             | returnStmt
	             | whileStmt ;
	block      --> "{" decl* "}" ;
	breakStmt  --> "break" ";" ;
	exprStmt   --> expr ";" ;
	forStmt    --> "for" "(" ( varDecl | exprStmt | ";" ) expr? ";" expr? ")" stmt ;
	ifStmt     --> "if" "(" expr ")" stmt ( "else" stmt )? ;
	printStmt  --> "print" expr ";" ;
	returnStmt --> "return" expr? ";" ;
	whileStmt  --> "while" "(" expr ")" stmt ;
	expr       --> assign ;
	assign     --> ( call "." )? IDENTIFIER "=" assign
	             | ternary ;
	ternary    --> or ( "?" ternary ":" ternary )? ;
	or         --> and ( "or" and )* ;
	and        --> equality ( "and" equality )* ;
	equality   --> comparison ( ( "!=" | "==" ) comparison )* ;
	comparison --> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
	term       --> factor ( ( "-" | "+" ) factor )* ;
	factor     --> unary ( ( "/" | "*" ) unary )* ;
	unary      --> ( "!" | "-" | "+" | "/" | "*" ) unary
	             | call ;
	call       --> primary ( "(" args? ")" | "." IDENTIFIER )* ;
	args       --> expr ( "," expr )* ;
	primary    --> NUMBER | STRING | IDENTIFIER
	             | "true" | "false" | "nil" | "this"
	             | "(" expr ")" ;

Every binary level folds iteratively to the left, so chains of operators at the
same level are left-associative. The ternary level instead recurses on its own
rule for the else branch, which makes chained conditionals group to the right.

"unary" rule has some matches for error generations:
+ Unary '+' expressions are not supported.
+ Unary '/' expressions are not supported.
+ Unary '*' expressions are not supported.

A few context conditions are checked while parsing and reported as syntax
errors even though the grammar rules above admit them:
+ "break" must appear inside a loop.
+ "return" must appear inside a function or method body.
+ "this" must appear inside a class body.
*/
package lox
