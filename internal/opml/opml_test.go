package opml_test

import (
	"strings"
	"testing"

	"tcm-go/internal/model"
	"tcm-go/internal/opml"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <body>
    <outline text="登录模块">
      <outline text="正常登录">
        <outline text="前置条件">
          <outline text="1. 已安装应用"/>
          <outline text="2. 网络可用"/>
        </outline>
        <outline text="操作步骤">
          <outline text="1. 打开应用"/>
          <outline text="2. 输入账号密码"/>
          <outline text="3. 点击登录"/>
        </outline>
        <outline text="预期结果">
          <outline text="进入首页"/>
        </outline>
        <outline text="优先级">
          <outline text="P1"/>
        </outline>
      </outline>
      <outline text="Login with wrong password">
        <outline text="Steps">
          <outline text="1. Open app"/>
          <outline text=""/>
          <outline text="2. Enter wrong password"/>
        </outline>
        <outline text="Expected Result">
          <outline text="error message shown"/>
        </outline>
        <outline text="Priority">
          <outline text="p2"/>
        </outline>
      </outline>
    </outline>
  </body>
</opml>`

func TestParse(t *testing.T) {
	cases, err := opml.Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}

	t.Run("chinese section headings", func(t *testing.T) {
		c := cases[0]
		if c.Name != "正常登录" {
			t.Errorf("Name = %q", c.Name)
		}
		if want := `已安装应用\n网络可用`; c.Precondition != want {
			t.Errorf("Precondition = %q, want %q", c.Precondition, want)
		}
		if want := `打开应用\n输入账号密码\n点击登录`; c.Steps != want {
			t.Errorf("Steps = %q, want %q", c.Steps, want)
		}
		if c.ExpectedResult != "进入首页" {
			t.Errorf("ExpectedResult = %q", c.ExpectedResult)
		}
		if c.Priority != model.PriorityHigh {
			t.Errorf("Priority = %q, want high", c.Priority)
		}
		if c.Status != model.StatusPending {
			t.Errorf("Status = %q, want pending", c.Status)
		}
	})

	t.Run("english section headings and blank line dropping", func(t *testing.T) {
		c := cases[1]
		if c.Name != "Login with wrong password" {
			t.Errorf("Name = %q", c.Name)
		}
		if want := `Open app\nEnter wrong password`; c.Steps != want {
			t.Errorf("Steps = %q, want %q", c.Steps, want)
		}
		if c.Priority != model.PriorityMedium {
			t.Errorf("Priority = %q, want medium", c.Priority)
		}
	})
}

func TestParse_DefaultsToLowPriority(t *testing.T) {
	doc := `<opml><body><outline text="root">
	  <outline text="case without priority">
	    <outline text="Steps"><outline text="do it"/></outline>
	  </outline>
	</outline></body></opml>`

	cases, err := opml.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("got %d cases, want 1", len(cases))
	}
	if cases[0].Priority != model.PriorityLow {
		t.Errorf("Priority = %q, want low", cases[0].Priority)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	if _, err := opml.Parse(strings.NewReader("<opml><body>")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestParse_EmptyBody(t *testing.T) {
	cases, err := opml.Parse(strings.NewReader("<opml><body></body></opml>"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cases) != 0 {
		t.Errorf("got %d cases, want 0", len(cases))
	}
}
