package ansi

// ReservedWords can never be naked identifiers.
var ReservedWords = []string{
	"ALL", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST", "CHECK",
	"CONSTRAINT", "CREATE", "CROSS", "DEFAULT", "DELETE", "DESC", "DISTINCT",
	"DROP", "ELSE", "END", "EXCEPT", "EXISTS", "FALSE", "FETCH", "FOREIGN",
	"FROM", "FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT", "INTERSECT",
	"INTO", "IS", "JOIN", "LEFT", "LIKE", "LIMIT", "NATURAL", "NOT", "NULL",
	"OFFSET", "ON", "OR", "ORDER", "OUTER", "OVER", "PRIMARY", "REFERENCES",
	"RIGHT", "SELECT", "SET", "TABLE", "THEN", "TRUE", "UNION", "UNIQUE",
	"UPDATE", "USING", "VALUES", "VIEW", "WHEN", "WHERE", "WINDOW", "WITH",
}

// UnreservedWords are keywords that remain valid identifiers.
var UnreservedWords = []string{
	"CASCADE", "CHARACTER", "CURRENT", "DOUBLE", "ESCAPE", "FIRST",
	"FOLLOWING", "GROUPS", "IF", "KEY", "LAST", "NULLS", "PARTITION",
	"PRECEDING", "PRECISION", "RANGE", "RECURSIVE", "REPLACE", "RESTRICT",
	"ROW", "ROWS", "TEMP", "TEMPORARY", "TIME", "UNBOUNDED", "VALUE",
	"VARYING", "WITHOUT", "ZONE",
}
