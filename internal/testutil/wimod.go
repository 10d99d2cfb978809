package testutil

// WiMODNavTree is the navtreedata.js generated for the WiMOD HCI driver.
const WiMODNavTree = `var NAVTREE =
[
  [ "Demo HCI Implementation for WiMOD-LR Devices", "index.html", [
    [ "WiMOD HCI Driver Implementation for the Arduino™ / Genuino Platform", "index.html", [
      [ "About", "index.html#about", null ],
      [ "Intended Hardware Setup", "index.html#Intended_HwSetup", null ],
      [ "HCI Communication", "index.html#HCI_COM", [
        [ "Message Flow", "index.html#MesgFlow", null ]
      ] ],
      [ "Package", "index.html#Package", null ],
      [ "Installation", "index.html#Installation", null ],
      [ "Usage", "index.html#Usage", [
        [ "Include files", "index.html#includeFiles", null ],
        [ "API Object creation", "index.html#ApiObjCreate", null ],
        [ "Setup", "index.html#ApiSetup", null ],
        [ "Using the API", "index.html#ApiUsage", null ],
        [ "Examples", "index.html#Examples", null ],
        [ "Hint for C++11 platforms", "index.html#Hint", null ]
      ] ],
      [ "Note", "index.html#note", null ],
      [ "EULA - SOFTWARE LICENSE POLICY", "index.html#eula", [
        [ "LIMITED LICENSE", "index.html#limit_licence", null ],
        [ "LIMITED WARRANTIES", "index.html#limit_warranties", null ],
        [ "DISCLAIMER OF WARRANTIES, LIMITATIONS OF LIABILITY", "index.html#disclaimer", null ],
        [ "LICENSEES REMEDIES", "index.html#licensees_remdies", null ],
        [ "EXCLUSIVE PROPERTY", "index.html#exclusive_property", null ],
        [ "PROTECTION OF TRADE SECRETS", "index.html#protection_of_trade_secrets", null ],
        [ "MAINTENANCE FEES", "index.html#maintenance_fees", null ],
        [ "TERMINATION", "index.html#termination", null ],
        [ "ENTIRE AGREEMENT", "index.html#entire_agreement", null ],
        [ "GOVERNING LAW", "index.html#governing_law", null ],
        [ "SURVIVAL", "index.html#survival", null ],
        [ "NOTICES", "index.html#notices", null ],
        [ "RESTRICTIONS", "index.html#restrictions", null ]
      ] ]
    ] ],
    [ "Classes", "annotated.html", [
      [ "Class List", "annotated.html", "annotated_dup" ],
      [ "Class Hierarchy", "hierarchy.html", "hierarchy" ],
      [ "Class Members", "functions.html", [
        [ "All", "functions.html", "functions_dup" ],
        [ "Functions", "functions_func.html", "functions_func" ],
        [ "Variables", "functions_vars.html", null ]
      ] ]
    ] ],
    [ "Files", null, [
      [ "File List", "files.html", "files" ],
      [ "File Members", "globals.html", [
        [ "All", "globals.html", "globals_dup" ],
        [ "Functions", "globals_func.html", null ],
        [ "Typedefs", "globals_type.html", null ],
        [ "Enumerations", "globals_enum.html", null ],
        [ "Enumerator", "globals_eval.html", "globals_eval" ],
        [ "Macros", "globals_defs.html", null ]
      ] ]
    ] ]
  ] ]
];

var NAVTREEINDEX =
[
"_c_r_c16_8cpp.html",
"_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h.html#afea90dd70a5637bd764bc0bcfbe87b54ab1305ee9d9ac9b7d14ddcf66c6714588",
"_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds___u_s915_8h.html#a37c788662d112ee17ddd0da6f10e2f33adf1ef1157b6c07eafc287dbb503c588f",
"class_wi_m_o_d___s_a_p___dev_mgmt.html#aaed8e7f395d6bc0e5cb6dcd46a8939c1",
"globals_m.html"
];

var SYNCONMSG = 'click to disable panel synchronisation';
var SYNCOFFMSG = 'click to enable panel synchronisation';`

// WiMODFiles returns navtreedata.js plus every fragment it references.
func WiMODFiles() map[string]string {
	return map[string]string{
		"navtreedata.js": WiMODNavTree,
		"annotated_dup.js": `var annotated_dup =
[
    [ "CayenneLPP", "class_cayenne_l_p_p.html", null ],
    [ "TWiMODLORAWAN_TX_Data", "struct_t_wi_m_o_d_l_o_r_a_w_a_n___t_x___data.html", null ],
    [ "WiMOD_SAP_DevMgmt", "class_wi_m_o_d___s_a_p___dev_mgmt.html", null ],
    [ "WiMOD_SAP_LoRaWAN", "class_wi_m_o_d___s_a_p___lo_ra_w_a_n.html", null ],
    [ "WiMODLoRaWAN", "class_wi_m_o_d_lo_ra_w_a_n.html", "class_wi_m_o_d_lo_ra_w_a_n" ],
    [ "WiMODLRHCI", "class_wi_m_o_d_l_r_h_c_i.html", null ]
];
`,
		"class_wi_m_o_d_lo_ra_w_a_n.js": `var class_wi_m_o_d_lo_ra_w_a_n =
[
    [ "begin", "class_wi_m_o_d_lo_ra_w_a_n.html#a1c9dd1a1ef6ed9b0c2ba8e8d3fbf9b0d", null ],
    [ "ActivateDevice", "class_wi_m_o_d_lo_ra_w_a_n.html#a1f54a0d6e1c9a8e0d3a7c6d9f4f1b2c3", null ],
    [ "SendUData", "class_wi_m_o_d_lo_ra_w_a_n.html#a7d08e7d4c1a2f3b4c5d6e7f8091a2b3c", null ]
];
`,
		"hierarchy.js": `var hierarchy =
[
    [ "CayenneLPP", "class_cayenne_l_p_p.html", null ],
    [ "TWiMODLR_HCIMessage", "struct_t_wi_m_o_d_l_r___h_c_i_message.html", null ],
    [ "WiMODLRHCI", "class_wi_m_o_d_l_r_h_c_i.html", [
      [ "WiMODLoRaWAN", "class_wi_m_o_d_lo_ra_w_a_n.html", null ],
      [ "WiMODLRBASE", "class_wi_m_o_d_l_r_b_a_s_e.html", null ]
    ] ]
];
`,
		"functions_dup.js": `var functions_dup =
[
    [ "a", "functions.html", null ],
    [ "s", "functions_s.html", null ]
];
`,
		"functions_func.js": `var functions_func =
[
    [ "a", "functions_func.html", null ],
    [ "s", "functions_func_s.html", null ]
];
`,
		"files.js": `var files =
[
    [ "ComSLIP.cpp", "_com_s_l_i_p_8cpp.html", null ],
    [ "CRC16.cpp", "_c_r_c16_8cpp.html", null ],
    [ "WiMOD_SAP_LORAWAN_IDs.h", "_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h.html", "_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h" ]
];
`,
		"_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h.js": `var _wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h =
[
    [ "TWiMODLORAWAN_TX_Data", "struct_t_wi_m_o_d_l_o_r_a_w_a_n___t_x___data.html", null ],
    [ "LORAWAN_MSG_SEND_UDATA_REQ", "_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h.html#afea90dd70a5637bd764bc0bcfbe87b54ab1305ee9d9ac9b7d14ddcf66c6714588", null ]
];
`,
		"globals_dup.js": `var globals_dup =
[
    [ "c", "globals.html", null ],
    [ "m", "globals_m.html", null ]
];
`,
		"globals_eval.js": `var globals_eval =
[
    [ "l", "globals_eval.html", null ]
];
`,
	}
}
