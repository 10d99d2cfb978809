package navtree

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// t3 builds one [title, target, children] tuple.
func t3(title string, target, children any) []any {
	return []any{title, target, children}
}

// wimodTree mirrors the navtreedata.js of the WiMOD HCI driver docs.
func wimodTree() []any {
	return []any{
		t3("Demo HCI Implementation for WiMOD-LR Devices", "index.html", []any{
			t3("WiMOD HCI Driver Implementation for the Arduino™ / Genuino Platform", "index.html", []any{
				t3("About", "index.html#about", nil),
				t3("Intended Hardware Setup", "index.html#Intended_HwSetup", nil),
				t3("HCI Communication", "index.html#HCI_COM", []any{
					t3("Message Flow", "index.html#MesgFlow", nil),
				}),
				t3("Package", "index.html#Package", nil),
				t3("Installation", "index.html#Installation", nil),
				t3("Usage", "index.html#Usage", []any{
					t3("Include files", "index.html#includeFiles", nil),
				}),
				t3("Note", "index.html#note", nil),
				t3("EULA - SOFTWARE LICENSE POLICY", "index.html#eula", []any{
					t3("LIMITED LICENSE", "index.html#limit_licence", nil),
				}),
			}),
			t3("Classes", "annotated.html", []any{
				t3("Class List", "annotated.html", "annotated_dup"),
				t3("Class Hierarchy", "hierarchy.html", "hierarchy"),
			}),
			t3("Files", nil, []any{
				t3("File List", "files.html", "files"),
			}),
		}),
	}
}

func wimodFlat() []string {
	return []string{
		"_c_r_c16_8cpp.html",
		"_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds_8h.html#afea90dd70a5637bd764bc0bcfbe87b54ab1305ee9d9ac9b7d14ddcf66c6714588",
		"_wi_m_o_d___s_a_p___l_o_r_a_w_a_n___i_ds___u_s915_8h.html#a37c788662d112ee17ddd0da6f10e2f33adf1ef1157b6c07eafc287dbb503c588f",
		"class_wi_m_o_d___s_a_p___dev_mgmt.html#aaed8e7f395d6bc0e5cb6dcd46a8939c1",
		"globals_m.html",
	}
}

// fragmentSet serves decoded fragments from memory and counts fetches.
type fragmentSet struct {
	mu      sync.Mutex
	data    map[string][]any
	fetches atomic.Int64
	gate    chan struct{} // when non-nil, Load blocks until it is closed
}

func newFragmentSet() *fragmentSet {
	return &fragmentSet{data: map[string][]any{
		"annotated_dup": {
			t3("CayenneLPP", "class_cayenne_l_p_p.html", nil),
			t3("TWiMODLORAWAN_TX_Data", "struct_t_wi_m_o_d_l_o_r_a_w_a_n___t_x___data.html", "struct_twimod_tx"),
		},
		"struct_twimod_tx": {
			t3("Port", "struct_t_wi_m_o_d_l_o_r_a_w_a_n___t_x___data.html#a1", nil),
		},
		"hierarchy": {
			t3("TWiMODLR_HCIMessage", "struct_t_wi_m_o_d_l_r___h_c_i_message.html", nil),
		},
		"files": {
			t3("ComSLIP.cpp", "_com_s_l_i_p_8cpp.html", nil),
		},
	}}
}

func (f *fragmentSet) Load(_ context.Context, ref string) ([]*Node, error) {
	f.fetches.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	raw, ok := f.data[ref]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("no such fragment: " + ref)
	}
	return Decode(raw)
}

func (f *fragmentSet) set(ref string, raw []any) {
	f.mu.Lock()
	f.data[ref] = raw
	f.mu.Unlock()
}

func (f *fragmentSet) drop(ref string) {
	f.mu.Lock()
	delete(f.data, ref)
	f.mu.Unlock()
}

func mustDecode(v any) []*Node {
	nodes, err := Decode(v)
	if err != nil {
		panic(err)
	}
	return nodes
}
