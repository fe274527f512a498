package manifest

import "testing"

func TestPomParse(t *testing.T) {
	path := writeFixture(t, "pom.xml", `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <dependencies>
    <dependency>
      <groupId>org.springframework</groupId>
      <artifactId>spring-core</artifactId>
      <version>6.1.3</version>
    </dependency>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>${guava.version}</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
    </dependency>
  </dependencies>
</project>`)

	facts, err := NewPomParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(facts) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(facts))
	}

	if facts[0].Name != "org.springframework:spring-core" || facts[0].Version != "6.1.3" {
		t.Errorf("fact 0 = %s@%q", facts[0].Name, facts[0].Version)
	}
	if facts[1].Version != "" {
		t.Errorf("property placeholder should map to absent version, got %q", facts[1].Version)
	}
	if facts[2].Name != "junit:junit" || facts[2].Version != "" {
		t.Errorf("fact 2 = %s@%q", facts[2].Name, facts[2].Version)
	}
	for i, f := range facts {
		if f.Language != LanguageJava {
			t.Errorf("fact %d language = %q", i, f.Language)
		}
	}
}

func TestPomParseNotAProject(t *testing.T) {
	path := writeFixture(t, "pom.xml", `<settings></settings>`)
	if _, err := NewPomParser().Parse(path); err == nil {
		t.Error("expected error for non-project document")
	}
}

func TestPomParseMalformed(t *testing.T) {
	path := writeFixture(t, "pom.xml", `<project><dependency>`)
	if _, err := NewPomParser().Parse(path); err == nil {
		t.Error("expected error for malformed XML")
	}
}
