package mcpserver

// NavTreeFormat describes the navigation data a Doxygen site ships and how
// the tools address it.
const NavTreeFormat = `# Navigation Tree Format

A generated documentation site describes its navigation in ` + "`navtreedata.js`" + `.

## Tree

` + "```" + `js
var NAVTREE =
[
  [ "Title", "page.html", [            // inline children
    [ "Section", "page.html#anchor", null ],   // leaf
    [ "Class List", "annotated.html", "annotated_dup" ]  // deferred
  ] ]
];
` + "```" + `

Every node is a tuple ` + "`[title, target, children]`" + `:

1. **title**: display text.
2. **target**: page, optionally with ` + "`#anchor`" + `; ` + "`null`" + ` for pure grouping nodes.
3. **children**: ` + "`null`" + ` (leaf), a nested list (inline), or a string naming a
   fragment file (deferred). A deferred node's children live in ` + "`<name>.js`" + `,
   which assigns the same tuple list to a variable called ` + "`<name>`" + `.

Order is significant and is never sorted.

## Node IDs

Tools address nodes by dotted child positions from the top level:
` + "`0`" + ` is the first root, ` + "`0.2.0`" + ` is the first child of its third child.
IDs reach into deferred fragments; ` + "`expand_node`" + ` loads them on demand.

## Flat index

` + "```" + `js
var NAVTREEINDEX = [ "index.html", "annotated.html", ... ];
` + "```" + `

Entry *i* is the target of the *i*-th node of a depth-first pre-order walk
over the fully expanded tree. ` + "`lookup_sequence`" + ` reads it by position,
valid from 0 to count-1.
`
