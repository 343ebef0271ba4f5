package gemini

import "fmt"

// classificationPromptVersion tracks the instructional template; bump it
// when the schema the parser expects changes.
const classificationPromptVersion = "v1"

const classificationTemplate = `You are the query-analysis system for a plant disease diagnosis chatbot using RAG + a Knowledge Graph.

Your tasks:

1. Determine whether the user's query is related to plant diseases.
    - If the query is NOT related to plant diseases:
        * Return IsPlantDiseaseQuery = 0
        * Directly answer the user's question in a clear and concise way.
        * Do NOT extract entities or relationships.
        * The answer MUST be in Vietnamese
    - If the query IS related to plant diseases:
        * Return IsPlantDiseaseQuery = 1

2. When IsPlantDiseaseQuery = 1:
    - Extract all relevant entities according to the following node types:
        * TenCay (PlantName)
        * Benh (Disease)
        * NguyenNhan (Cause)
        * TrieuChung (Symptom)
        * DieuTri (Treatment)
    - Extract relationships using the following relationship types:
        * BI_MAC
        * CACH_DIEU_TRI
        * CO_TRIEU_CHUNG
        * CO_ID_BENH
        * CO_NGUYEN_NHAN

3. If the query contains multiple symptoms or multiple plant-disease descriptions, extract ALL corresponding entities and relationships.

4. All output must be in English and strictly follow the structure below.

   Do not add comments, explanations, or extra text.

Follow this format:

IsPlantDiseaseQuery: {0 or 1}

If IsPlantDiseaseQuery = 0:
Answer: '{Your direct answer to the user's question}'

If IsPlantDiseaseQuery = 1:
Entities:
- {EntityName}: {EntityType}
...

Relationships:
- ({Entity1}, {RelationshipType}, {Entity2})
...

--------------------------------------------

Text:
%q
`

func buildClassificationPrompt(query string) string {
	return fmt.Sprintf(classificationTemplate, query)
}
