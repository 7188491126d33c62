package latex

import "testing"

func TestRenderPlaceholder(t *testing.T) {
	for _, src := range []string{"", "   ", "\n"} {
		if got := Render(src, true); got != Placeholder {
			t.Errorf("Render(%q, inline) = %q, want placeholder", src, got)
		}
		if got := Render(src, false); got != Placeholder {
			t.Errorf("Render(%q, block) = %q, want placeholder", src, got)
		}
	}
}

func TestRenderModes(t *testing.T) {
	if got := Render("a_1", true); got != "a₁" {
		t.Errorf("inline: got %q", got)
	}
	if got := Render("a_{1}", false); got != "  a₁" {
		t.Errorf("block: got %q", got)
	}
}

func TestToUnicode(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`x^{2}`, "x²"},
		{`u^{-1}`, "u⁻¹"},
		{`a_{10}`, "a₁₀"},
		{`x_{ab}`, "x_(ab)"},
		{`x^{\alpha}`, "x^α"},
		{`e^{\alpha t}`, "e^(αt)"},
		{`w_{0} = u^{2}`, "w₀ = u²"},
		{`\frac{\partial}{\partial t} u{\left(t,x \right)}`, "∂/∂t u(t,x)"},
		{`\frac{\partial^{2}}{\partial x^{2}} u{\left(t,x \right)}`, "∂²/∂x² u(t,x)"},
		{`\frac{a + b}{2}`, "(a + b)/2"},
		{`\frac{1}{u{\left(t,x \right)}}`, "1/u(t,x)"},
		{`\sqrt{u}`, "√u"},
		{`\sqrt{u + 1}`, "√(u + 1)"},
		{`\sqrt[3]{x}`, "³√x"},
		{`2 \cdot u`, "2 · u"},
		{`\operatorname{sech}{\left(x \right)}`, "sech(x)"},
		{`\sin{\left(x \right)}`, "sin(x)"},
		{`\sin x`, "sin x"},
		{`\left\{ a, b \right\}`, "{a, b}"},
		{`\left. u \right|_{x=0}`, "u |ₓ₌₀"},
		{`a\,b\!c`, "a bc"},
		{`\Gamma \leq \omega`, "Γ ≤ ω"},
		{`\mathrm{w}_{1}`, "w₁"},
		{`\mystery{x}`, "mysteryx"},
		{`u}`, "u"},
	}

	for _, tc := range cases {
		if got := ToUnicode(tc.src); got != tc.want {
			t.Errorf("ToUnicode(%q) = %q, want %q", tc.src, got, tc.want)
		}
	}
}
