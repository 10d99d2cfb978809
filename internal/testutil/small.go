package testutil

// SmallNavTree is a navigation tree whose NAVTREEINDEX lists the target of
// every node of the fully expanded tree in depth-first order.
const SmallNavTree = `var NAVTREE =
[
  [ "Demo HCI Implementation for WiMOD-LR Devices", "index.html", [
    [ "About", "index.html#about", null ],
    [ "HCI Communication", "index.html#HCI_COM", [
      [ "Message Flow", "index.html#MesgFlow", null ]
    ] ],
    [ "Classes", "annotated.html", [
      [ "Class List", "annotated.html", "annotated_dup" ]
    ] ]
  ] ]
];

var NAVTREEINDEX =
[
"index.html",
"index.html#about",
"index.html#HCI_COM",
"index.html#MesgFlow",
"annotated.html",
"annotated.html",
"class_cayenne_l_p_p.html",
"class_wi_m_o_d_lo_ra_w_a_n.html"
];

var SYNCONMSG = 'click to disable panel synchronisation';
var SYNCOFFMSG = 'click to enable panel synchronisation';
`

// SmallCount is the number of nodes (and index entries) of SmallNavTree.
const SmallCount = 8

// SmallFiles returns the small site: scripts and the pages they point at.
func SmallFiles() map[string]string {
	return map[string]string{
		"navtreedata.js": SmallNavTree,
		"annotated_dup.js": `var annotated_dup =
[
    [ "CayenneLPP", "class_cayenne_l_p_p.html", null ],
    [ "WiMODLoRaWAN", "class_wi_m_o_d_lo_ra_w_a_n.html", null ]
];
`,
		"index.html": `<!DOCTYPE html>
<html><head><title>Demo HCI Implementation for WiMOD-LR Devices</title></head>
<body>
<h1><a class="anchor" id="about"></a>About</h1>
<p>Demo HCI implementation.</p>
<h1 id="HCI_COM">HCI Communication</h1>
<h2><a name="MesgFlow"></a>Message Flow</h2>
</body></html>
`,
		"annotated.html":                  `<html><body><h1>Class List</h1></body></html>`,
		"class_cayenne_l_p_p.html":        `<html><body><h1>CayenneLPP</h1></body></html>`,
		"class_wi_m_o_d_lo_ra_w_a_n.html": `<html><body><h1>WiMODLoRaWAN</h1></body></html>`,
	}
}
